package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{tx: tx, products: products}
}

type RegisterProductInput struct {
	Name          string
	Description   string
	Price         int64
	TotalQuantity int64
}

// 商品登録（管理者）
func (u *ProductUsecase) Register(ctx context.Context, in RegisterProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewValidationError("product name is required")
	}
	if in.Price <= 0 {
		return model.Product{}, NewValidationError("product price must be greater than 0")
	}
	if in.TotalQuantity < 0 {
		return model.Product{}, NewValidationError("product quantity cannot be negative")
	}

	return u.products.Create(ctx, model.Product{
		Name:             name,
		Description:      in.Description,
		Price:            in.Price,
		TotalQuantity:    in.TotalQuantity,
		ReservedQuantity: 0,
	})
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
}

// 商品更新（管理者）。在庫カウンタはここでは触らない（InventoryUsecase経由）。
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) error {
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return NewValidationError("product name is required")
	}
	if in.Price <= 0 {
		return NewValidationError("product price must be greater than 0")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "product", ID: fmt.Sprint(productID)}
	}
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = in.Description
	p.Price = in.Price

	return u.products.Update(ctx, p)
}

// 商品削除（管理者）。非終端注文が参照している間は削除できない
// （引当の置き去り防止）。
func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		_, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "product", ID: fmt.Sprint(productID)}
		}
		if err != nil {
			return err
		}

		referenced, err := r.Orders().ExistsNonTerminalByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if referenced {
			return NewValidationError("product %d is referenced by open orders", productID)
		}

		return r.Products().Delete(ctx, productID)
	})
}

func (u *ProductUsecase) GetByID(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, &NotFoundError{Resource: "product", ID: fmt.Sprint(productID)}
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (u *ProductUsecase) ListAll(ctx context.Context) ([]model.Product, error) {
	return u.products.ListAll(ctx)
}

func (u *ProductUsecase) ListAvailable(ctx context.Context) ([]model.Product, error) {
	return u.products.ListAvailable(ctx)
}

func (u *ProductUsecase) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []model.Product{}, NewValidationError("search name cannot be empty")
	}
	return u.products.SearchByName(ctx, name)
}
