package repository

import (
	"context"
	"errors"

	"grocery/internal/domain/model"
)

var ErrDuplicateEmail = errors.New("email already registered")

type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, c model.Customer) error
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, id string) error

	//管理者用
	ListAll(ctx context.Context) ([]model.Customer, error)
	SearchByName(ctx context.Context, name string) ([]model.Customer, error)
}

type AdminUserRepository interface {
	FindByUsername(ctx context.Context, username string) (model.AdminUser, error)
	Create(ctx context.Context, a model.AdminUser) error
}
