package repository

import (
	"context"
	"errors"

	"grocery/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
// 在庫カウンタの更新はInventoryRepositoryが担当し、ここでは触らない。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)

	// 販売可能（available > 0）な商品だけ
	ListAvailable(ctx context.Context) ([]model.Product, error)

	// 名前の部分一致検索（大文字小文字を区別しない、販売可能のみ）
	SearchByName(ctx context.Context, name string) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
