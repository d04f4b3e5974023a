package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new VAULT_SECRET value",
	Long: `Prints a freshly generated random secret suitable for the
VAULT_SECRET environment variable.

Changing the secret on a live server makes previously encrypted
fields unreadable, so generate one before the first start and keep it.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate secret: %w", err)
		}

		fmt.Printf("%s %s\n", color.CyanString("VAULT_SECRET="), hex.EncodeToString(buf))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
