package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"
)

// 注文ライフサイクル管理。注文ステータスを変更できる唯一のコンポーネント。
// 在庫カウンタには直接触らず、必ず台帳のReserve/Release経由で動かす。
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type CreateOrderInput struct {
	CustomerID string
	ProductID  int64
	Quantity   int64

	//省略時は price × quantity
	Amount *int64
}

type OrderOutput struct {
	ID         int64     `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	OrderDate  time.Time `json:"order_date"`
}

// 注文作成。引当→注文保存を1トランザクションで行い、
// 保存に失敗したら補償としてReleaseしてからエラーを返す。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if in.CustomerID == "" {
		return OrderOutput{}, NewValidationError("customer id is required")
	}
	if in.ProductID <= 0 {
		return OrderOutput{}, NewValidationError("product id is required")
	}
	if in.Quantity <= 0 {
		return OrderOutput{}, NewValidationError("quantity ordered must be greater than 0")
	}
	if in.Amount != nil && *in.Amount <= 0 {
		return OrderOutput{}, NewValidationError("order amount must be greater than 0")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//顧客の存在確認
		exists, err := r.Customers().Exists(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{Resource: "customer", ID: in.CustomerID}
		}

		//商品の存在確認
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "product", ID: fmt.Sprint(in.ProductID)}
		}
		if err != nil {
			return err
		}

		amount := p.Price * in.Quantity
		if in.Amount != nil {
			amount = *in.Amount
		}
		if amount <= 0 {
			return NewValidationError("order amount must be greater than 0")
		}

		//引当。条件付きUPDATEなので同じ商品への並行予約が空きを超えることはない
		ok, err := r.Inventory().Reserve(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			//失敗時点の空きを読み直して返す（負にはならない）
			avail, err := r.Inventory().AvailableQuantity(ctx, in.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Resource: "product", ID: fmt.Sprint(in.ProductID)}
			}
			if err != nil {
				return fmt.Errorf("read availability: %w", err)
			}
			return &InsufficientStockError{
				ProductID: in.ProductID,
				Available: avail,
				Requested: in.Quantity,
			}
		}

		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:      in.CustomerID,
			ProductID:       in.ProductID,
			QuantityOrdered: in.Quantity,
			OrderAmount:     amount,
			Status:          model.OrderStatusPending,
			OrderDate:       now,
		})
		if err != nil {
			//補償: 引当を戻してからエラーを返す。
			//戻しに失敗したら引当が宙に浮くので致命として上げる
			if relErr := r.Inventory().Release(ctx, in.ProductID, in.Quantity); relErr != nil {
				return &InconsistencyError{ProductID: in.ProductID, Quantity: in.Quantity, Err: relErr}
			}
			return fmt.Errorf("create order: %w", err)
		}

		out = OrderOutput{
			ID:         orderID,
			CustomerID: in.CustomerID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			Amount:     amount,
			Status:     string(model.OrderStatusPending),
			OrderDate:  now,
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ステータス遷移。遷移表にない組は拒否、同一ステータスはno-opで成功。
// CANCELLEDへの遷移だけ引当を戻す。DELIVEREDでは戻さない
// （出荷済み在庫は消費されたものとして扱う）。
func (u *OrderUsecase) TransitionStatus(ctx context.Context, actorAdminID int64, orderID int64, newStatus model.OrderStatus) error {
	if orderID <= 0 {
		return NewValidationError("invalid order id")
	}
	if !newStatus.Valid() {
		return NewValidationError("invalid status: %s", newStatus)
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: fmt.Sprint(orderID)}
		}
		if err != nil {
			return err
		}

		//同一ステータスは常に許可、何もしない
		if o.Status == newStatus {
			return nil
		}

		if !o.Status.CanTransitionTo(newStatus) {
			return &InvalidTransitionError{From: o.Status, To: newStatus}
		}

		//キャンセル到達時だけ引当を戻す
		if newStatus == model.OrderStatusCancelled {
			if err := r.Inventory().Release(ctx, o.ProductID, o.QuantityOrdered); err != nil {
				return releaseError(o.ProductID, err)
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{"status":"` + string(newStatus) + `"}`,
			CreatedAt:    time.Now(),
		})
	})
}

// 顧客によるキャンセル。終端（DELIVERED/CANCELLED）の注文はエラー
// （同一ステータスno-opより厳しい）。
func (u *OrderUsecase) CancelOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewValidationError("invalid order id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: fmt.Sprint(orderID)}
		}
		if err != nil {
			return err
		}

		if o.Status.Terminal() {
			return &InvalidTransitionError{From: o.Status, To: model.OrderStatusCancelled}
		}

		if err := r.Inventory().Release(ctx, o.ProductID, o.QuantityOrdered); err != nil {
			return releaseError(o.ProductID, err)
		}

		return r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
	})
}

// 管理者による物理削除。非終端なら先に引当を戻してから消す
// （引当の置き去り防止）。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, actorAdminID int64, orderID int64) error {
	if orderID <= 0 {
		return NewValidationError("invalid order id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: fmt.Sprint(orderID)}
		}
		if err != nil {
			return err
		}

		if !o.Status.Terminal() {
			if err := r.Inventory().Release(ctx, o.ProductID, o.QuantityOrdered); err != nil {
				return releaseError(o.ProductID, err)
			}
		}

		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{}`,
			CreatedAt:    time.Now(),
		})
	})
}

// 自分の注文詳細。他人の注文は「存在しない扱い」にする
func (u *OrderUsecase) GetMyOrder(ctx context.Context, customerID string, orderID int64) (OrderOutput, error) {
	if customerID == "" {
		return OrderOutput{}, NewValidationError("customer id is required")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewValidationError("invalid order id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: fmt.Sprint(orderID)}
		}
		if err != nil {
			return err
		}
		if o.CustomerID != customerID {
			return &NotFoundError{Resource: "order", ID: fmt.Sprint(orderID)}
		}

		out = toOrderOutput(o)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, customerID string) ([]OrderOutput, error) {
	if customerID == "" {
		return []OrderOutput{}, NewValidationError("customer id is required")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		outs = toOrderOutputs(orders)
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// Releaseの失敗をusecaseのエラー型へ写す。
// 商品が消えていたらNotFound、それ以外は文脈を付けて返す。
func releaseError(productID int64, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "product", ID: fmt.Sprint(productID)}
	}
	return fmt.Errorf("release reservation: %w", err)
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		Quantity:   o.QuantityOrdered,
		Amount:     o.OrderAmount,
		Status:     string(o.Status),
		OrderDate:  o.OrderDate,
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs
}
