package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 顧客管理。本人のプロフィール参照・更新と、管理者向けの一覧/検索/削除。
type CustomerUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
}

func NewCustomerUsecase(tx repo.TransactionManager, customers repo.CustomerRepository) *CustomerUsecase {
	return &CustomerUsecase{tx: tx, customers: customers}
}

type UpdateCustomerInput struct {
	FullName      string
	Email         string
	Address       string
	ContactNumber string

	//空なら据え置き
	Password string
}

// 本人のプロフィール。ハッシュは返さない
func (u *CustomerUsecase) GetProfile(ctx context.Context, customerID string) (model.Customer, error) {
	if customerID == "" {
		return model.Customer{}, NewValidationError("customer id is required")
	}

	c, err := u.customers.FindByID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, &NotFoundError{Resource: "customer", ID: customerID}
	}
	if err != nil {
		return model.Customer{}, err
	}

	c.PasswordHash = ""
	return c, nil
}

// プロフィール更新。パスワードは指定があるときだけ差し替える
func (u *CustomerUsecase) UpdateProfile(ctx context.Context, customerID string, in UpdateCustomerInput) (model.Customer, error) {
	if customerID == "" {
		return model.Customer{}, NewValidationError("customer id is required")
	}

	name := strings.TrimSpace(in.FullName)
	if len(name) < 2 || len(name) > 100 {
		return model.Customer{}, NewValidationError("full name must be between 2 and 100 characters")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return model.Customer{}, NewValidationError("invalid email format")
	}
	if strings.TrimSpace(in.Address) == "" {
		return model.Customer{}, NewValidationError("address is required")
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return model.Customer{}, NewValidationError("contact number is required")
	}
	if in.Password != "" && len(in.Password) < 8 {
		return model.Customer{}, NewValidationError("password must be at least 8 characters")
	}

	c, err := u.customers.FindByID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, &NotFoundError{Resource: "customer", ID: customerID}
	}
	if err != nil {
		return model.Customer{}, err
	}

	c.FullName = name
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Address = strings.TrimSpace(in.Address)
	c.ContactNumber = strings.TrimSpace(in.ContactNumber)

	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.Customer{}, err
		}
		c.PasswordHash = string(hashed)
	}

	if err := u.customers.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return model.Customer{}, NewValidationError("email already registered")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return model.Customer{}, &NotFoundError{Resource: "customer", ID: customerID}
		}
		return model.Customer{}, err
	}

	c.PasswordHash = ""
	return c, nil
}

// 一覧（管理者）。ハッシュは返さない
func (u *CustomerUsecase) ListAll(ctx context.Context) ([]model.Customer, error) {
	items, err := u.customers.ListAll(ctx)
	if err != nil {
		return []model.Customer{}, err
	}
	return maskCustomers(items), nil
}

// 名前検索（管理者）
func (u *CustomerUsecase) SearchByName(ctx context.Context, name string) ([]model.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []model.Customer{}, NewValidationError("search name cannot be empty")
	}

	items, err := u.customers.SearchByName(ctx, name)
	if err != nil {
		return []model.Customer{}, err
	}
	return maskCustomers(items), nil
}

// 顧客削除（管理者）。非終端注文が残っている間は削除できない
// （引当の置き去り防止。商品削除と同じガード）。
func (u *CustomerUsecase) Delete(ctx context.Context, customerID string) error {
	if customerID == "" {
		return NewValidationError("customer id is required")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		exists, err := r.Customers().Exists(ctx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{Resource: "customer", ID: customerID}
		}

		referenced, err := r.Orders().ExistsNonTerminalByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		if referenced {
			return NewValidationError("customer %s has open orders", customerID)
		}

		return r.Customers().Delete(ctx, customerID)
	})
}

// 登録フォームの事前チェック用
func (u *CustomerUsecase) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, NewValidationError("email is required")
	}
	return u.customers.EmailExists(ctx, email)
}

func maskCustomers(items []model.Customer) []model.Customer {
	out := make([]model.Customer, 0, len(items))
	for _, c := range items {
		c.PasswordHash = ""
		out = append(out, c)
	}
	return out
}
