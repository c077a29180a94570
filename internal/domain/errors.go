package domain

import "errors"

var (
	// ErrMissingCustomerColumns はinvoice_documentsに必要な顧客カラムが不足している場合のエラー。
	ErrMissingCustomerColumns = errors.New("invoice_documents table missing customer fields")

	// ErrMigrationLogUpdateFailed はmigration_logの更新に失敗した場合のエラー。
	ErrMigrationLogUpdateFailed = errors.New("failed to update migration log")
)
