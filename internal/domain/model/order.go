package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 状態遷移表。同一ステータスへの遷移は常に許可（no-op）。
// DELIVERED / CANCELLED は終端。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// ステータス文字列が既知のものか
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// これ以上遷移できないステータスか
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// sからnextへの遷移が許されるか
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// 注文。引当はステータスがPENDING/CONFIRMED/SHIPPEDの間保持され、
// CANCELLED到達時と非終端での削除時にだけ解放される。
// DELIVERED到達では解放しない（出荷済み在庫の消費として扱う）。
type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      string      `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProductID       int64       `gorm:"not null;index" json:"product_id"`
	QuantityOrdered int64       `gorm:"not null" json:"quantity_ordered"`
	OrderAmount     int64       `gorm:"not null" json:"order_amount"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//作成時に設定、以後不変
	OrderDate time.Time `gorm:"not null;autoCreateTime" json:"order_date"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
