package model

import "time"

// 顧客。IDはUUID文字列。
type Customer struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	FullName      string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;not null" json:"-"`
	Address       string    `gorm:"type:varchar(500);not null" json:"address"`
	ContactNumber string    `gorm:"type:varchar(20);not null" json:"contact_number"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
