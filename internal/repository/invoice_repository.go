// Package repository はデータアクセス層の実装を提供する。
package repository

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"invoice-verification-service/internal/domain"
)

// InvoiceDocumentModel はinvoice_documentsテーブルのモデル。
// テーブルは外部の請求書システムが所有しており、このツールからは参照のみ行う。
type InvoiceDocumentModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	InvoiceNumber string    `gorm:"type:varchar(64);not null"`
	CustomerCode  *string   `gorm:"type:varchar(64)"`
	CustomerName  *string   `gorm:"type:varchar(255)"`
	Status        string    `gorm:"type:varchar(32);not null"`
	CreatedAt     time.Time `gorm:"type:datetime;not null;autoCreateTime"`
}

// TableName はテーブル名を指定。
func (InvoiceDocumentModel) TableName() string {
	return "invoice_documents"
}

// InvoiceLineModel はinvoice_linesテーブルのモデル。
type InvoiceLineModel struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	InvoiceID uint `gorm:"not null;index:idx_invoice_id"`
}

// TableName はテーブル名を指定。
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// inconsistentInvoiceRow は整合性チェッククエリのスキャン用構造体。
type inconsistentInvoiceRow struct {
	ID            uint
	InvoiceNumber string
	CustomerCode  *string
	CustomerName  *string
	Status        string
	LineCount     int64
	CreatedAt     time.Time
}

// InvoiceRepository は請求書データへの参照アクセスを提供する。
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository は新しいInvoiceRepositoryを生成する。
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// FindMissingCustomerCode は顧客コードが未設定のまま明細を持つ請求書を検索する。
// 作成日時の降順で最大limit件を返す。
func (r *InvoiceRepository) FindMissingCustomerCode(ctx context.Context, limit int) ([]*domain.InconsistentInvoice, error) {
	var rows []inconsistentInvoiceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.invoice_number,
			d.customer_code,
			d.customer_name,
			d.status,
			COUNT(l.id) AS line_count,
			d.created_at
		FROM invoice_documents d
		LEFT JOIN invoice_lines l ON d.id = l.invoice_id
		WHERE d.customer_code IS NULL OR d.customer_code = ''
		GROUP BY d.id, d.invoice_number, d.customer_code, d.customer_name, d.status, d.created_at
		HAVING COUNT(l.id) > 0
		ORDER BY d.created_at DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to find invoices with missing customer code",
			"operation", "find_missing_customer_code",
			"error", err,
		)
		return nil, err
	}

	invoices := make([]*domain.InconsistentInvoice, len(rows))
	for i, row := range rows {
		invoice := &domain.InconsistentInvoice{
			ID:            row.ID,
			InvoiceNumber: row.InvoiceNumber,
			Status:        row.Status,
			LineCount:     row.LineCount,
			CreatedAt:     row.CreatedAt,
		}
		if row.CustomerCode != nil {
			invoice.CustomerCode = *row.CustomerCode
		}
		if row.CustomerName != nil {
			invoice.CustomerName = *row.CustomerName
		}
		invoices[i] = invoice
	}
	return invoices, nil
}
