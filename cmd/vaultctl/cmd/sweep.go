package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vaultis/internal/app/server/config"
	"vaultis/internal/app/server/crypto"
	"vaultis/internal/domain/secret"
	"vaultis/internal/infrastructure/storage/postgres"
	"vaultis/internal/utils/logger"
)

var sweepTimeout time.Duration

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired secrets",
	Long: `Removes secrets whose expiry time has passed.

Expired secrets are also deleted lazily when someone tries to reveal
them, so sweeping is housekeeping rather than a correctness requirement.
Run it periodically (for example from cron) to keep the table small.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		log := logger.New(cfg.Env)

		storage, err := postgres.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to storage: %w", err)
		}
		defer storage.Close()

		cipher, err := crypto.NewFieldCipher(cfg.Vault.Secret, cfg.Vault.Salt)
		if err != nil {
			return fmt.Errorf("init field cipher: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), sweepTimeout)
		defer cancel()

		service := secret.NewService(postgres.NewSecretRepository(storage.Pool(), log), cipher, log)
		removed, err := service.Sweep(ctx)
		if err != nil {
			return fmt.Errorf("sweep expired secrets: %w", err)
		}

		color.Green("Removed %d expired secret(s)", removed)
		return nil
	},
}

func init() {
	sweepCmd.Flags().DurationVar(&sweepTimeout, "timeout", 30*time.Second, "maximum time to wait for the sweep")
	rootCmd.AddCommand(sweepCmd)
}
