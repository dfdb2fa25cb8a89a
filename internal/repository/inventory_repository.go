package repository

import (
	"context"

	"grocery/internal/domain/model"
)

// 在庫台帳。reserved_quantity / total_quantity を更新できる唯一の窓口。
// ReserveとSetTotalQuantityは条件付きUPDATE一発で実装すること。
// 読んでから書く二段階にすると、並行予約が同じ空きを二重に通して
// 売り越しが起きる。
type InventoryRepository interface {
	// available >= qty のときだけ reserved_quantity += qty。
	// 適用されなければ false（商品が無い場合も false）。
	Reserve(ctx context.Context, productID int64, qty int64) (bool, error)

	// reserved_quantity -= qty、下限0でクランプ。二重呼び出しに耐える。
	Release(ctx context.Context, productID int64, qty int64) error

	// reserved_quantity <= newTotal のときだけ total_quantity = newTotal。
	// 適用されなければ false。
	SetTotalQuantity(ctx context.Context, productID int64, newTotal int64) (bool, error)

	// total_quantity - reserved_quantity。商品が無ければErrNotFound。
	AvailableQuantity(ctx context.Context, productID int64) (int64, error)

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
