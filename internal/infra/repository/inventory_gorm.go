package repository

import (
	"context"
	"errors"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 空きが足りるときだけ引当を増やす。
// 条件付きUPDATE一発なので、並行に走っても合計が空きを超えることはない。
func (r *InventoryGormRepository) Reserve(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND total_quantity - reserved_quantity >= ?", productID, qty).
		Update("reserved_quantity", gorm.Expr("reserved_quantity + ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 引当戻し。下限0でクランプするので二重解放でも負にならない。
func (r *InventoryGormRepository) Release(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("reserved_quantity", gorm.Expr("GREATEST(0, reserved_quantity - ?)", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 引当済みを下回る総量は設定させない
func (r *InventoryGormRepository) SetTotalQuantity(ctx context.Context, productID int64, newTotal int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND reserved_quantity <= ?", productID, newTotal).
		Update("total_quantity", newTotal)

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *InventoryGormRepository) AvailableQuantity(ctx context.Context, productID int64) (int64, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", productID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return p.AvailableQuantity(), nil
}

// 調整履歴作成
func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return err
	}
	return nil
}
