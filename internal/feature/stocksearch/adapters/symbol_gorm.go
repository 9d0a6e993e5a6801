// Package adapters はstocksearchフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"signalist_backend/internal/feature/stocksearch/domain/entity"
	"signalist_backend/internal/feature/stocksearch/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// symbolGorm はSymbolCatalogインターフェースのGORM実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolCatalog = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にアクティブな銘柄を最大limit件返します。limitが0以下なら全件です。
func (r *symbolGorm) ListActive(ctx context.Context, limit int) ([]entity.Symbol, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var symbols []entity.Symbol
	if err := q.Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// SeedDefaults は未登録のデフォルト銘柄を追加します。既存の行は変更しません。
func (r *symbolGorm) SeedDefaults(ctx context.Context) error {
	rows := make([]entity.Symbol, len(entity.DefaultPopular))
	copy(rows, entity.DefaultPopular)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows).Error
}
