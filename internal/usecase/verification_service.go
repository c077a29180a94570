// Package usecase は検証処理のビジネスロジックを提供する。
package usecase

import (
	"context"
	"log/slog"

	"invoice-verification-service/internal/domain"
)

// inconsistentInvoiceLimit は整合性チェックで報告する請求書の上限件数。
const inconsistentInvoiceLimit = 10

// requiredColumnCount は構造チェックで必要なカラム数。
const requiredColumnCount = 2

// SchemaRepository はカタログメタデータを参照するリポジトリのインターフェース。
type SchemaRepository interface {
	FindCustomerColumns(ctx context.Context) ([]domain.ColumnInfo, error)
}

// InvoiceRepository は請求書データを参照するリポジトリのインターフェース。
type InvoiceRepository interface {
	FindMissingCustomerCode(ctx context.Context, limit int) ([]*domain.InconsistentInvoice, error)
}

// MigrationLogRepository はマイグレーション記録を管理するリポジトリのインターフェース。
type MigrationLogRepository interface {
	EnsureTable(ctx context.Context) error
	Upsert(ctx context.Context, entry *domain.MigrationLogEntry) error
}

// VerificationService は顧客コード修正の検証・記録を統括する。
type VerificationService struct {
	schemaRepo  SchemaRepository
	invoiceRepo InvoiceRepository
	logRepo     MigrationLogRepository
}

// NewVerificationService は新しいVerificationServiceを生成する。
func NewVerificationService(schemaRepo SchemaRepository, invoiceRepo InvoiceRepository, logRepo MigrationLogRepository) *VerificationService {
	return &VerificationService{
		schemaRepo:  schemaRepo,
		invoiceRepo: invoiceRepo,
		logRepo:     logRepo,
	}
}

// CheckStructure はinvoice_documentsテーブルに顧客カラムが存在するか確認する。
// 2カラム以上見つかれば両カラム存在とみなす。
func (s *VerificationService) CheckStructure(ctx context.Context) bool {
	columns, err := s.schemaRepo.FindCustomerColumns(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error checking invoice_documents table",
			"operation", "check_structure",
			"error", err,
		)
		return false
	}

	if len(columns) < requiredColumnCount {
		slog.ErrorContext(ctx, "invoice_documents table missing customer fields",
			"operation", "check_structure",
			"found_columns", len(columns),
			"error", domain.ErrMissingCustomerColumns,
		)
		return false
	}

	slog.InfoContext(ctx, "invoice_documents table has required customer fields")
	for _, col := range columns {
		attrs := []any{
			"column", col.Name,
			"data_type", col.DataType,
			"nullable", col.Nullable,
		}
		if col.MaxLength != nil {
			attrs = append(attrs, "max_length", *col.MaxLength)
		}
		slog.InfoContext(ctx, "customer column found", attrs...)
	}
	return true
}

// ValidateConsistency は顧客コード未設定のまま明細を持つ請求書が存在しないか検証する。
// クエリ失敗も「不整合あり」と同じfalseに畳み込まれるため、falseが即データ不良を
// 意味するとは限らない点に注意。
func (s *VerificationService) ValidateConsistency(ctx context.Context) bool {
	invoices, err := s.invoiceRepo.FindMissingCustomerCode(ctx, inconsistentInvoiceLimit)
	if err != nil {
		slog.ErrorContext(ctx, "error validating customer code data",
			"operation", "validate_consistency",
			"error", err,
		)
		return false
	}

	if len(invoices) > 0 {
		slog.WarnContext(ctx, "found invoices with missing customer codes but have line items",
			"operation", "validate_consistency",
			"count", len(invoices),
		)
		for _, invoice := range invoices {
			slog.WarnContext(ctx, "invoice missing customer code",
				"invoice_id", invoice.ID,
				"invoice_number", invoice.InvoiceNumber,
				"line_count", invoice.LineCount,
				"status", invoice.Status,
			)
		}
		return false
	}

	slog.InfoContext(ctx, "no invoices found with missing customer codes and line items")
	return true
}

// UpdateMigrationLog はmigration_logテーブルを作成し、この修正の記録をupsertする。
func (s *VerificationService) UpdateMigrationLog(ctx context.Context) bool {
	if err := s.logRepo.EnsureTable(ctx); err != nil {
		slog.ErrorContext(ctx, "error updating migration log",
			"operation", "update_migration_log",
			"error", err,
		)
		return false
	}

	entry := &domain.MigrationLogEntry{
		Name:        domain.CustomerCodeFixName,
		Description: domain.CustomerCodeFixDescription,
		Status:      domain.MigrationStatusApplied,
		Notes:       domain.CustomerCodeFixNotes,
	}
	if err := s.logRepo.Upsert(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "error updating migration log",
			"operation", "update_migration_log",
			"error", err,
		)
		return false
	}

	slog.InfoContext(ctx, "migration log updated successfully")
	return true
}

// Run は検証を順次実行し、結果レポートを返す。
// 構造チェック失敗時は後続チェックを実行しない。整合性チェックの失敗は
// 警告にとどめ、全体結果には影響させない。
func (s *VerificationService) Run(ctx context.Context, dryRun bool) *domain.VerificationReport {
	report := &domain.VerificationReport{DryRun: dryRun}

	slog.InfoContext(ctx, "invoice customer code fix verification started",
		"migration_name", domain.CustomerCodeFixName,
	)

	slog.InfoContext(ctx, "step 1: checking invoice_documents table structure")
	report.StructureOK = s.CheckStructure(ctx)
	if !report.StructureOK {
		slog.ErrorContext(ctx, "verification failed: table structure issues")
		return report
	}

	slog.InfoContext(ctx, "step 2: validating customer code data consistency")
	report.DataConsistent = s.ValidateConsistency(ctx)
	if !report.DataConsistent {
		slog.WarnContext(ctx, "found invoices that would benefit from the customer code fix")
	}

	if dryRun {
		slog.InfoContext(ctx, "step 3: skipping migration log update (dry run)")
	} else {
		slog.InfoContext(ctx, "step 3: updating migration log")
		report.LogUpdated = s.UpdateMigrationLog(ctx)
		if !report.LogUpdated {
			slog.ErrorContext(ctx, "failed to update migration log")
			return report
		}
	}

	s.logSummary(ctx, report)
	return report
}

// logSummary は各チェック結果とこの修正が伴うコード変更の概要を出力する。
func (s *VerificationService) logSummary(ctx context.Context, report *domain.VerificationReport) {
	consistency := "ok"
	if !report.DataConsistent {
		consistency = "issues found (will be fixed by code changes)"
	}
	migrationLog := "updated"
	if report.DryRun {
		migrationLog = "skipped (dry run)"
	}

	slog.InfoContext(ctx, "verification summary",
		"table_structure", "ok",
		"data_consistency", consistency,
		"migration_log", migrationLog,
	)
	slog.InfoContext(ctx, "code changes applied",
		"changes", []string{
			"updated invoice creation routes in modules/invoice_creation/routes.py",
			"fixed customer code saving in create_draft endpoint",
			"enhanced customer code freeze logic in add serial item endpoint",
			"prioritizes user-selected customer over SAP-detected customer",
		},
	)
	slog.InfoContext(ctx, "verification completed successfully")
}
