package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codahale/siv"
)

var (
	keyPath string
	adHex   []string
	outPath string
)

func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "siv",
		Short:        "Deterministic authenticated encryption with AES-SIV (RFC 5297)",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&keyPath, "key", "k", "", "path to hex key file: MAC key then AES key, equal halves")
	root.PersistentFlags().StringArrayVar(&adHex, "ad", nil, "associated data as hex (repeatable, order is significant)")
	_ = root.MarkPersistentFlagRequired("key")

	root.AddCommand(encryptCmd(), decryptCmd())
	return root
}

// loadKeys reads the key file and splits it per RFC 5297 §2.6: the S2V (MAC)
// half comes first, the counter-mode (AES) half second.
func loadKeys() (aesKey, macKey []byte, err error) {
	raw, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, nil, err
	}
	combined, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, nil, fmt.Errorf("key file is not hex: %w", err)
	}
	switch len(combined) {
	case 32, 48, 64:
	default:
		return nil, nil, fmt.Errorf("key file holds %d bytes, want 32, 48, or 64", len(combined))
	}
	half := len(combined) / 2
	return combined[half:], combined[:half], nil
}

func loadAD() (siv.AssociatedData, error) {
	var ad siv.AssociatedData
	for _, s := range adHex {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("associated data %q is not hex: %w", s, err)
		}
		ad = append(ad, b)
	}
	return ad, nil
}
