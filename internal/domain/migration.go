package domain

import "time"

// MigrationStatus はマイグレーションの適用状態を表す。
type MigrationStatus string

const (
	MigrationStatusApplied    MigrationStatus = "applied"
	MigrationStatusFailed     MigrationStatus = "failed"
	MigrationStatusRolledBack MigrationStatus = "rolled_back"
)

// このツールが検証・記録する修正の識別情報。
// 名前はmigration_logの一意キーとなり、再実行時はupsertされる。
const (
	CustomerCodeFixName        = "invoice_customer_code_fix_20250904"
	CustomerCodeFixDescription = "Fixed customer code saving issue in invoice creation workflow"
	CustomerCodeFixNotes       = "Updated invoice creation routes to properly save user-selected customer code and name when creating draft invoices and adding serial items. Customer code is now frozen after first line item is added."
)

// MigrationLogEntry はmigration_logテーブルの1レコードを表すドメインモデル。
type MigrationLogEntry struct {
	ID          uint
	Name        string // マイグレーション名（一意キー）
	Description string
	AppliedAt   time.Time
	Status      MigrationStatus
	Notes       string
}
