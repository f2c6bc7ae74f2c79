// AngelaMos | 2026
// keygen.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/carterperez-dev/asset-management/internal/auth"
)

var (
	privateKeyPath string
	publicKeyPath  string
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the ES256 key pair used to sign session tokens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, p := range []string{privateKeyPath, publicKeyPath} {
			if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
				return fmt.Errorf("create key dir: %w", err)
			}
		}

		if err := auth.GenerateKeyPair(privateKeyPath, publicKeyPath); err != nil {
			return err
		}

		cmd.Printf("wrote %s and %s\n", privateKeyPath, publicKeyPath)
		return nil
	},
}

func init() {
	keygenCmd.Flags().StringVar(&privateKeyPath, "private", "keys/private.pem", "private key output path")
	keygenCmd.Flags().StringVar(&publicKeyPath, "public", "keys/public.pem", "public key output path")
}
