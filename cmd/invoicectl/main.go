// Package main はCLIツールのエントリポイント。
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"invoice-verification-service/config"
	"invoice-verification-service/internal/infra"
)

const version = "1.0.0"

// 全サブコマンドで共有する設定
var cfg *config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:          "invoicectl",
		Short:        "Invoice customer code fix verification CLI",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .envファイルを読み込む（存在しない場合は無視）
			// 既存の環境変数は上書きしない
			_ = godotenv.Load()

			cfg = config.Load()

			// ログレベル設定
			var logLevel slog.Level
			switch cfg.LogLevel {
			case "DEBUG":
				logLevel = slog.LevelDebug
			case "WARN":
				logLevel = slog.LevelWarn
			case "ERROR":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
			infra.SetupLogger(cfg, logLevel)
		},
	}

	// サブコマンド登録
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd はバージョン情報を表示する。
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("invoicectl version %s\n", version)
		},
	}
}
