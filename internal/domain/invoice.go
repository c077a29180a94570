// Package domain はドメインモデルとビジネスルールを定義する。
package domain

import "time"

// ColumnInfo はカタログから取得したカラム定義を表す。
type ColumnInfo struct {
	Name      string
	DataType  string
	MaxLength *int64 // 宣言された最大長（取得できない場合はnil）
	Nullable  bool
}

// InconsistentInvoice は顧客コードが未設定のまま明細を持つ請求書を表す。
type InconsistentInvoice struct {
	ID            uint
	InvoiceNumber string
	CustomerCode  string
	CustomerName  string
	Status        string
	LineCount     int64
	CreatedAt     time.Time
}
