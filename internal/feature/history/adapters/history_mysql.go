// Package adapters はhistoryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chili_backend/internal/feature/history/domain/entity"
	"chili_backend/internal/feature/history/usecase"
)

// HistoryModel は履歴テーブルのGORMモデルです。
// カラム名は既存スキーマ（image, name, accuracy, date）に合わせています。
type HistoryModel struct {
	ID         uint   `gorm:"primaryKey"`
	ImageRef   string `gorm:"column:image;size:512;not null"`
	Label      string `gorm:"column:name;size:255;not null"`
	Accuracy   int    `gorm:"column:accuracy;not null"`
	OccurredAt string `gorm:"column:date;size:32;not null;index"`
}

// TableName はデフォルトのテーブル名を上書きします。
func (HistoryModel) TableName() string {
	return "history"
}

func toModel(h *entity.History) HistoryModel {
	return HistoryModel{
		ImageRef:   h.ImageRef,
		Label:      h.Label,
		Accuracy:   h.Accuracy,
		OccurredAt: h.OccurredAt,
	}
}

func toEntity(m HistoryModel) entity.History {
	return entity.History{
		ID:         m.ID,
		ImageRef:   m.ImageRef,
		Label:      m.Label,
		Accuracy:   m.Accuracy,
		OccurredAt: m.OccurredAt,
	}
}

// historyMySQL はHistoryRepositoryインターフェースのGORM実装です。
type historyMySQL struct {
	db *gorm.DB
}

// historyMySQLがHistoryRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HistoryRepository = (*historyMySQL)(nil)

// NewHistoryRepository は指定されたgorm.DB接続でhistoryMySQLの新しいインスタンスを生成します。
func NewHistoryRepository(db *gorm.DB) *historyMySQL {
	return &historyMySQL{db: db}
}

// Create は履歴レコードを1件のトランザクション内で挿入します。
// コミット前に失敗した場合、部分的なレコードが読み手から見えることはありません。
func (r *historyMySQL) Create(ctx context.Context, h *entity.History) error {
	m := toModel(h)
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	}); err != nil {
		return err
	}
	h.ID = m.ID
	return nil
}

// FindAll は全履歴をdateの降順で返します。
// ページングは行いません。レコード数に対するスケーラビリティ上限であり、
// 単一テナントの利用範囲では許容されています。
func (r *historyMySQL) FindAll(ctx context.Context) ([]entity.History, error) {
	var rows []HistoryModel
	if err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.History, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// DeleteByID はIDで履歴を削除します。影響行数が0の場合、
// usecase.ErrHistoryNotFoundを返します。
func (r *historyMySQL) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&HistoryModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHistoryNotFound
	}
	return nil
}
