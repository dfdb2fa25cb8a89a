package usecase

import (
	"context"
	"time"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"
)

// 読み取り専用の集計ファサード。不変条件は持たない。
// 引当の状態はここからは判断しない（それは台帳の仕事）。
type ReportUsecase struct {
	orders    repo.OrderRepository
	customers repo.CustomerRepository
}

func NewReportUsecase(orders repo.OrderRepository, customers repo.CustomerRepository) *ReportUsecase {
	return &ReportUsecase{orders: orders, customers: customers}
}

type OrderStatistics struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	ConfirmedOrders int64 `json:"confirmed_orders"`
	ShippedOrders   int64 `json:"shipped_orders"`
	DeliveredOrders int64 `json:"delivered_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`

	//DELIVERED注文のorder_amount合計
	TotalRevenue int64 `json:"total_revenue"`
}

func (u *ReportUsecase) ListByCustomer(ctx context.Context, customerID string) ([]OrderOutput, error) {
	if customerID == "" {
		return []OrderOutput{}, NewValidationError("customer id is required")
	}

	exists, err := u.customers.Exists(ctx, customerID)
	if err != nil {
		return []OrderOutput{}, err
	}
	if !exists {
		return []OrderOutput{}, &NotFoundError{Resource: "customer", ID: customerID}
	}

	orders, err := u.orders.ListByCustomerID(ctx, customerID)
	if err != nil {
		return []OrderOutput{}, err
	}
	return toOrderOutputs(orders), nil
}

func (u *ReportUsecase) ListByStatus(ctx context.Context, status model.OrderStatus) ([]OrderOutput, error) {
	if !status.Valid() {
		return []OrderOutput{}, NewValidationError("invalid status: %s", status)
	}

	orders, err := u.orders.ListByStatus(ctx, status)
	if err != nil {
		return []OrderOutput{}, err
	}
	return toOrderOutputs(orders), nil
}

func (u *ReportUsecase) ListByDateRange(ctx context.Context, from, to time.Time) ([]OrderOutput, error) {
	if from.After(to) {
		return []OrderOutput{}, NewValidationError("start date cannot be after end date")
	}

	orders, err := u.orders.ListByDateRange(ctx, from, to)
	if err != nil {
		return []OrderOutput{}, err
	}
	return toOrderOutputs(orders), nil
}

func (u *ReportUsecase) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, int64, error) {
	if f.Page < 1 {
		return []OrderOutput{}, 0, NewValidationError("invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, 0, NewValidationError("invalid limit")
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return []OrderOutput{}, 0, NewValidationError("invalid status: %s", f.Status)
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return []OrderOutput{}, 0, err
	}
	return toOrderOutputs(orders), total, nil
}

// 注文統計（管理者）
func (u *ReportUsecase) Statistics(ctx context.Context) (OrderStatistics, error) {
	counts, err := u.orders.CountByStatus(ctx)
	if err != nil {
		return OrderStatistics{}, err
	}

	revenue, err := u.orders.TotalRevenue(ctx)
	if err != nil {
		return OrderStatistics{}, err
	}

	stats := OrderStatistics{
		PendingOrders:   counts[model.OrderStatusPending],
		ConfirmedOrders: counts[model.OrderStatusConfirmed],
		ShippedOrders:   counts[model.OrderStatusShipped],
		DeliveredOrders: counts[model.OrderStatusDelivered],
		CancelledOrders: counts[model.OrderStatusCancelled],
		TotalRevenue:    revenue,
	}
	for _, c := range counts {
		stats.TotalOrders += c
	}
	return stats, nil
}
