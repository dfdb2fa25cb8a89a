package model

import "time"

// 商品。total_quantity が物理在庫、reserved_quantity が未完了注文の引当分。
// 0 <= reserved_quantity <= total_quantity を常に保つ。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//価格（最小通貨単位）
	Price int64 `gorm:"not null" json:"price"`

	//総在庫数
	TotalQuantity int64 `gorm:"not null;default:0" json:"total_quantity"`

	//引当済み数量。台帳（InventoryRepository）だけが更新する
	ReservedQuantity int64 `gorm:"not null;default:0" json:"reserved_quantity"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 今すぐ販売できる数量
func (p Product) AvailableQuantity() int64 {
	return p.TotalQuantity - p.ReservedQuantity
}
