package repository

import (
	"context"
	"log/slog"
	"sort"

	"gorm.io/gorm"

	"invoice-verification-service/internal/domain"
)

// 請求書作成ワークフローの修正で必須となる顧客カラム。
var requiredCustomerColumns = map[string]bool{
	"customer_code": true,
	"customer_name": true,
}

// SchemaRepository はカタログメタデータへのアクセスを提供する。
type SchemaRepository struct {
	db *gorm.DB
}

// NewSchemaRepository は新しいSchemaRepositoryを生成する。
func NewSchemaRepository(db *gorm.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// FindCustomerColumns はinvoice_documentsテーブルの顧客カラム定義をカラム名順で取得する。
// customer_code / customer_name 以外のカラムは対象外。
func (r *SchemaRepository) FindCustomerColumns(ctx context.Context) ([]domain.ColumnInfo, error) {
	columnTypes, err := r.db.WithContext(ctx).Migrator().ColumnTypes(&InvoiceDocumentModel{})
	if err != nil {
		slog.ErrorContext(ctx, "failed to read invoice_documents column types",
			"operation", "find_customer_columns",
			"error", err,
		)
		return nil, err
	}

	var columns []domain.ColumnInfo
	for _, ct := range columnTypes {
		if !requiredCustomerColumns[ct.Name()] {
			continue
		}
		info := domain.ColumnInfo{
			Name:     ct.Name(),
			DataType: ct.DatabaseTypeName(),
		}
		if length, ok := ct.Length(); ok {
			info.MaxLength = &length
		}
		if nullable, ok := ct.Nullable(); ok {
			info.Nullable = nullable
		}
		columns = append(columns, info)
	}

	sort.Slice(columns, func(i, j int) bool {
		return columns[i].Name < columns[j].Name
	})

	return columns, nil
}
