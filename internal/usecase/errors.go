package usecase

import (
	"errors"
	"fmt"

	"grocery/internal/domain/model"
)

// 認証失敗（存在しない/パスワード不一致は区別しない）
var ErrInvalidCredentials = errors.New("invalid credentials")

// 変更が起きる前に弾く入力エラー
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// 参照先（商品・顧客・注文）が存在しない
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// 空きを超える引当要求。呼び出し側の表示用にavailable/requestedを持つ
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity available for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

// 状態遷移表が禁じる遷移
type InvalidTransitionError struct {
	From model.OrderStatus
	To   model.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// 予約成功後の補償解放に失敗した。
// reserved_quantity が実注文と食い違っている可能性があるため、
// 握りつぶさずオペレーター対応まで上げる。
type InconsistencyError struct {
	ProductID int64
	Quantity  int64
	Err       error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("compensating release of %d units for product %d failed: %v",
		e.Quantity, e.ProductID, e.Err)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}
