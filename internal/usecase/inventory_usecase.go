package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"
)

// 在庫台帳の管理者向け窓口。Reserve/Releaseはここでは公開しない
// （引当の増減は注文ライフサイクル経由のみ）。
type InventoryUsecase struct {
	tx        repo.TransactionManager
	inventory repo.InventoryRepository
}

func NewInventoryUsecase(tx repo.TransactionManager, inventory repo.InventoryRepository) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, inventory: inventory}
}

func (u *InventoryUsecase) AvailableQuantity(ctx context.Context, productID int64) (int64, error) {
	if productID <= 0 {
		return 0, NewValidationError("invalid product id")
	}

	avail, err := u.inventory.AvailableQuantity(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, &NotFoundError{Resource: "product", ID: fmt.Sprint(productID)}
	}
	if err != nil {
		return 0, err
	}
	return avail, nil
}

// 総在庫の設定（管理者）。引当済みを下回る値は拒否する。
// 調整履歴と監査ログを同じトランザクションで残す。
func (u *InventoryUsecase) SetTotalQuantity(ctx context.Context, actorAdminID int64, productID int64, newTotal int64, reason string) error {
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}
	if newTotal < 0 {
		return NewValidationError("total quantity cannot be negative")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "product", ID: fmt.Sprint(productID)}
		}
		if err != nil {
			return err
		}

		if newTotal < p.ReservedQuantity {
			return NewValidationError("new total %d is below reserved quantity %d", newTotal, p.ReservedQuantity)
		}

		ok, err := r.Inventory().SetTotalQuantity(ctx, productID, newTotal)
		if err != nil {
			return err
		}
		if !ok {
			//読み取りとUPDATEの間に引当が増えた
			return NewValidationError("new total %d is below reserved quantity", newTotal)
		}

		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID:   productID,
			AdminUserID: actorAdminID,
			Delta:       newTotal - p.TotalQuantity,
			Reason:      reason,
			CreatedAt:   time.Now(),
		}); err != nil {
			return err
		}

		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorAdminID: actorAdminID,
			Action:       model.AuditActionUpdateStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   productID,
			BeforeJSON:   `{"total_quantity":` + strconv.FormatInt(p.TotalQuantity, 10) + `}`,
			AfterJSON:    `{"total_quantity":` + strconv.FormatInt(newTotal, 10) + `}`,
			CreatedAt:    time.Now(),
		})
	})
}
