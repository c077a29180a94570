package repository

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoice-verification-service/internal/domain"
)

// MigrationLogModel はmigration_logテーブルのモデル。
type MigrationLogModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	MigrationName string    `gorm:"type:varchar(255);not null;uniqueIndex:uk_migration_name"`
	Description   string    `gorm:"type:text"`
	AppliedAt     time.Time `gorm:"type:datetime;not null;autoCreateTime"`
	Status        string    `gorm:"type:enum('applied','failed','rolled_back');not null;default:'applied'"`
	Notes         string    `gorm:"type:text"`
}

// TableName はテーブル名を指定。
func (MigrationLogModel) TableName() string {
	return "migration_log"
}

// toDomain はモデルをドメインエンティティに変換する。
func (m *MigrationLogModel) toDomain() *domain.MigrationLogEntry {
	return &domain.MigrationLogEntry{
		ID:          m.ID,
		Name:        m.MigrationName,
		Description: m.Description,
		AppliedAt:   m.AppliedAt,
		Status:      domain.MigrationStatus(m.Status),
		Notes:       m.Notes,
	}
}

// MigrationLogRepository はマイグレーション適用履歴を管理するリポジトリ。
type MigrationLogRepository struct {
	db *gorm.DB
}

// NewMigrationLogRepository は新しいMigrationLogRepositoryを生成する。
func NewMigrationLogRepository(db *gorm.DB) *MigrationLogRepository {
	return &MigrationLogRepository{db: db}
}

// EnsureTable はmigration_logテーブルが存在しない場合に作成する。
func (r *MigrationLogRepository) EnsureTable(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&MigrationLogModel{}) {
		return nil
	}
	if err := migrator.CreateTable(&MigrationLogModel{}); err != nil {
		slog.ErrorContext(ctx, "failed to create migration_log table",
			"operation", "ensure_table",
			"error", err,
		)
		return err
	}
	return nil
}

// Upsert はマイグレーション記録を登録する。
// 同名の記録が既に存在する場合は適用日時・ステータス・ノートのみ更新する
// （説明は初回登録時の値を保持する）。
func (r *MigrationLogRepository) Upsert(ctx context.Context, entry *domain.MigrationLogEntry) error {
	model := &MigrationLogModel{
		MigrationName: entry.Name,
		Description:   entry.Description,
		Status:        string(entry.Status),
		Notes:         entry.Notes,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "migration_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"applied_at": time.Now(),
			"status":     string(domain.MigrationStatusApplied),
			"notes":      entry.Notes,
		}),
	}).Create(model).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to upsert migration log entry",
			"operation", "upsert",
			"migration_name", entry.Name,
			"error", err,
		)
		return err
	}
	return nil
}

// FindAll は全マイグレーション記録を適用日時の降順で取得する。
func (r *MigrationLogRepository) FindAll(ctx context.Context) ([]*domain.MigrationLogEntry, error) {
	var models []MigrationLogModel
	if err := r.db.WithContext(ctx).Order("applied_at DESC").Find(&models).Error; err != nil {
		slog.ErrorContext(ctx, "failed to find migration log entries",
			"operation", "find_all",
			"error", err,
		)
		return nil, err
	}

	entries := make([]*domain.MigrationLogEntry, len(models))
	for i := range models {
		entries[i] = models[i].toDomain()
	}
	return entries, nil
}
