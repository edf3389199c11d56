package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codahale/siv"
	"github.com/codahale/siv/internal/memwipe"
)

// decrypt <input>: authenticate and decrypt a file produced by encrypt.
func decryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <input>",
		Short: "Authenticate and decrypt a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aesKey, macKey, err := loadKeys()
			if err != nil {
				return err
			}
			defer memwipe.Wipe(aesKey)
			defer memwipe.Wipe(macKey)

			ad, err := loadAD()
			if err != nil {
				return err
			}

			ciphertext, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			plaintext, err := siv.Decrypt(aesKey, macKey, ciphertext, ad)
			if err != nil {
				return err
			}

			out := outPath
			if out == "" {
				if !strings.HasSuffix(args[0], ".siv") {
					return fmt.Errorf("cannot infer output name from %q, use --out", args[0])
				}
				out = strings.TrimSuffix(args[0], ".siv")
			}
			return os.WriteFile(out, plaintext, 0o600)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <input> without .siv)")
	return cmd
}
