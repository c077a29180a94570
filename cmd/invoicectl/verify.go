package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"invoice-verification-service/internal/domain"
	"invoice-verification-service/internal/infra"
	"invoice-verification-service/internal/repository"
	"invoice-verification-service/internal/usecase"
)

// verifyCmd は顧客コード修正の検証を実行するコマンド。
func verifyCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the invoice customer code fix and record it in migration_log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// トレーサー初期化（OTEL_ENABLED=false の場合はnil）
			tp, err := infra.InitTracer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to init tracer: %w", err)
			}
			if tp != nil {
				defer func() {
					if shutdownErr := tp.Shutdown(ctx); shutdownErr != nil {
						slog.Error("failed to shutdown tracer", "error", shutdownErr)
					}
				}()
			}

			// 実行単位の識別子を全ログに付与する
			runID := uuid.NewString()
			slog.SetDefault(slog.Default().With("run_id", runID))

			// データベース接続
			db, err := infra.NewDB(cfg)
			if err != nil {
				slog.Error("failed to connect to MySQL",
					"host", cfg.MySQLHost,
					"database", cfg.MySQLDatabase,
					"error", err,
				)
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if sqlDB, dbErr := db.DB(); dbErr == nil {
					_ = sqlDB.Close()
				}
			}()

			service := usecase.NewVerificationService(
				repository.NewSchemaRepository(db),
				repository.NewInvoiceRepository(db),
				repository.NewMigrationLogRepository(db),
			)

			// 検証実行（1実行=1ルートスパン）
			ctx, span := otel.Tracer("invoicectl").Start(ctx, "verify")
			report := service.Run(ctx, dryRun)
			span.End()

			if !report.StructureOK {
				return fmt.Errorf("verification failed: table structure issues")
			}
			if !report.Success() {
				return domain.ErrMigrationLogUpdateFailed
			}

			fmt.Println("Verification completed successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run checks without writing to migration_log")
	return cmd
}
