package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"
	"grocery/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func newAuthUsecase(customers *CustomerRepoMock, admins *AdminUserRepoMock) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(
		customers,
		admins,
		&fixedIDGen{id: customerID},
		&fixedClock{t: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)},
		testSecret,
		15*time.Minute,
	)
}

func TestAuthUsecase_RegisterCustomer_Validations(t *testing.T) {
	uc := newAuthUsecase(new(CustomerRepoMock), new(AdminUserRepoMock))

	valid := usecase.RegisterCustomerInput{
		FullName:      "Hanako Yamada",
		Email:         "hanako@example.com",
		Password:      "password123",
		Address:       "1-2-3 Shibuya",
		ContactNumber: "090-1234-5678",
	}

	cases := []func(in *usecase.RegisterCustomerInput){
		func(in *usecase.RegisterCustomerInput) { in.FullName = "A" },
		func(in *usecase.RegisterCustomerInput) { in.Email = "not-an-email" },
		func(in *usecase.RegisterCustomerInput) { in.Password = "short" },
		func(in *usecase.RegisterCustomerInput) { in.Address = "  " },
		func(in *usecase.RegisterCustomerInput) { in.ContactNumber = "" },
	}
	for i, mutate := range cases {
		in := valid
		mutate(&in)
		_, err := uc.RegisterCustomer(context.Background(), in)
		var ve *usecase.ValidationError
		assert.True(t, errors.As(err, &ve), "case=%d", i)
	}
}

func TestAuthUsecase_RegisterCustomer_DuplicateEmail(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateEmail)

	uc := newAuthUsecase(customers, new(AdminUserRepoMock))
	_, err := uc.RegisterCustomer(context.Background(), usecase.RegisterCustomerInput{
		FullName:      "Hanako Yamada",
		Email:         "hanako@example.com",
		Password:      "password123",
		Address:       "1-2-3 Shibuya",
		ContactNumber: "090-1234-5678",
	})

	var ve *usecase.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestAuthUsecase_RegisterCustomer_HashesPasswordAndLowersEmail(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c model.Customer) bool {
		if c.ID != customerID || c.Email != "hanako@example.com" {
			return false
		}
		//平文が保存されないこと
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("password123")) == nil
	})).Return(nil)

	uc := newAuthUsecase(customers, new(AdminUserRepoMock))
	c, err := uc.RegisterCustomer(context.Background(), usecase.RegisterCustomerInput{
		FullName:      "Hanako Yamada",
		Email:         " Hanako@Example.com ",
		Password:      "password123",
		Address:       "1-2-3 Shibuya",
		ContactNumber: "090-1234-5678",
	})

	assert.NoError(t, err)
	assert.Empty(t, c.PasswordHash)
	customers.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "hanako@example.com").Return(model.Customer{
		ID: customerID, Email: "hanako@example.com", PasswordHash: string(hashed),
	}, nil)

	uc := newAuthUsecase(customers, new(AdminUserRepoMock))
	_, err := uc.Login(context.Background(), "hanako@example.com", "wrong-password")

	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

// 未知のメールも資格情報エラーに畳む（存在の有無を漏らさない）
func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.Customer{}, repo.ErrNotFound)

	uc := newAuthUsecase(customers, new(AdminUserRepoMock))
	_, err := uc.Login(context.Background(), "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_IssuesCustomerToken(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	customers := new(CustomerRepoMock)
	customers.On("FindByEmail", mock.Anything, "hanako@example.com").Return(model.Customer{
		ID: customerID, Email: "hanako@example.com", PasswordHash: string(hashed),
	}, nil)

	uc := newAuthUsecase(customers, new(AdminUserRepoMock))
	out, err := uc.Login(context.Background(), "hanako@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, usecase.RoleCustomer, out.Role)
	assert.Equal(t, customerID, out.Subject)
	assert.Equal(t, int64(900), out.ExpiresIn)

	//発行したトークンが自分の秘密鍵で検証できること
	parsed, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return testSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time {
		return time.Date(2026, 1, 15, 12, 5, 0, 0, time.UTC)
	}))
	assert.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, customerID, claims["sub"])
	assert.Equal(t, usecase.RoleCustomer, claims["role"])
}

func TestAuthUsecase_AdminLogin_IssuesAdminToken(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin-pass-123"), bcrypt.MinCost)
	admins := new(AdminUserRepoMock)
	admins.On("FindByUsername", mock.Anything, "root").Return(model.AdminUser{
		ID: 7, Username: "root", PasswordHash: string(hashed),
	}, nil)

	uc := newAuthUsecase(new(CustomerRepoMock), admins)
	out, err := uc.AdminLogin(context.Background(), "root", "admin-pass-123")

	assert.NoError(t, err)
	assert.Equal(t, usecase.RoleAdmin, out.Role)
	assert.Equal(t, "7", out.Subject)
}
