package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/codahale/siv"
	"github.com/codahale/siv/internal/memwipe"
)

// encrypt <input>: encrypt a file, writing <input>.siv by default.
func encryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt <input>",
		Short: "Deterministically encrypt a file",
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

			plaintext, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ciphertext, err := siv.Encrypt(aesKey, macKey, plaintext, ad)
			if err != nil {
				return err
			}

			out := outPath
			if out == "" {
				out = args[0] + ".siv"
			}
			return os.WriteFile(out, ciphertext, 0o600)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <input>.siv)")
	return cmd
}
