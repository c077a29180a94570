package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoice-verification-service/internal/infra"
	"invoice-verification-service/internal/repository"
)

// statusCmd はmigration_logの記録一覧を表示するコマンド。
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show recorded migration log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// データベース接続
			db, err := infra.NewDB(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if sqlDB, dbErr := db.DB(); dbErr == nil {
					_ = sqlDB.Close()
				}
			}()

			repo := repository.NewMigrationLogRepository(db)
			entries, err := repo.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch migration log: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No migration log entries.")
				return nil
			}

			// テーブル形式で出力
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTATUS\tAPPLIED AT\tDESCRIPTION")
			fmt.Fprintln(w, "----\t------\t----------\t-----------")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					entry.Name,
					entry.Status,
					entry.AppliedAt.Format("2006-01-02 15:04:05"),
					entry.Description,
				)
			}

			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush output: %w", err)
			}

			return nil
		},
	}
}
