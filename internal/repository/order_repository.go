package repository

import (
	"context"
	"time"

	"grocery/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page       int
	Limit      int
	Status     string
	CustomerID *string
	From       *time.Time
	To         *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	ListByCustomerID(ctx context.Context, customerID string) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Order, error)

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	//商品を参照する非終端注文が残っているか（商品削除ガード用）
	ExistsNonTerminalByProductID(ctx context.Context, productID int64) (bool, error)

	//顧客の非終端注文が残っているか（顧客削除ガード用）
	ExistsNonTerminalByCustomerID(ctx context.Context, customerID string) (bool, error)

	//統計用
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
	//DELIVERED注文のorder_amount合計
	TotalRevenue(ctx context.Context) (int64, error)
}
