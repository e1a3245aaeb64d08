package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"eventos_inscricoes/internal/adapter/persistence/repository"
	"eventos_inscricoes/internal/infrastructure/config"
	"eventos_inscricoes/internal/infrastructure/database"
	"eventos_inscricoes/internal/infrastructure/logger"
	"eventos_inscricoes/internal/usecase"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [vouchers|registrations]",
		Short: "Run a batch migration against the DynamoDB tables",
		Long: `Run a batch migration and print its summary as JSON.

  vouchers       create the missing voucher of every completed acquisition
  registrations  re-derive registration statuses from their checkout

Examples:
  inscricoes-cli migrate vouchers
  inscricoes-cli migrate registrations`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{usecase.MigrationBackfillVouchers, usecase.MigrationResyncRegistrations},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			logger.Setup(cfg.Log)

			ctx := cmd.Context()
			ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
			if err != nil {
				return fmt.Errorf("connecting to dynamodb: %w", err)
			}

			uc := usecase.NewMigrationUseCase(
				repository.NewCheckoutDynamoRepository(ddb, cfg.Tables.Checkouts, cfg.Tables.DeletedCheckouts),
				repository.NewRegistrationDynamoRepository(ddb, cfg.Tables.Registrations),
				repository.NewVoucherDynamoRepository(ddb, cfg.Tables.Vouchers),
			)
			return runMigration(ctx, uc, args[0], cmd.OutOrStdout())
		},
	}
}

func runMigration(ctx context.Context, uc usecase.IMigrationUseCase, name string, out io.Writer) error {
	var (
		summary usecase.MigrationSummary
		err     error
	)
	switch name {
	case usecase.MigrationBackfillVouchers:
		summary, err = uc.BackfillVouchers(ctx)
	case usecase.MigrationResyncRegistrations:
		summary, err = uc.ResyncRegistrations(ctx)
	default:
		return fmt.Errorf("%w: %q", usecase.ErrUnknownMigration, name)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d item(s) failed", summary.Failed)
	}
	return nil
}
