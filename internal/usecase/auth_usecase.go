package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 会員登録・ログインとJWT発行。
// コアはここで決めたrole/subを信頼し、usecase内でroleを再判定しない。
type AuthUsecase struct {
	customers  repo.CustomerRepository
	admins     repo.AdminUserRepository
	idGen      IDGenerator
	clock      Clock
	jwtSecret  []byte
	accessTTL  time.Duration
	bcryptCost int
}

func NewAuthUsecase(
	customers repo.CustomerRepository,
	admins repo.AdminUserRepository,
	idGen IDGenerator,
	clock Clock,
	jwtSecret []byte,
	accessTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		customers:  customers,
		admins:     admins,
		idGen:      idGen,
		clock:      clock,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
}

type RegisterCustomerInput struct {
	FullName      string
	Email         string
	Password      string
	Address       string
	ContactNumber string
}

type TokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
	Subject     string `json:"subject"`
}

// 会員登録
func (u *AuthUsecase) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (model.Customer, error) {
	name := strings.TrimSpace(in.FullName)
	if len(name) < 2 || len(name) > 100 {
		return model.Customer{}, NewValidationError("full name must be between 2 and 100 characters")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return model.Customer{}, NewValidationError("invalid email format")
	}
	if len(in.Password) < 8 {
		return model.Customer{}, NewValidationError("password must be at least 8 characters")
	}
	if strings.TrimSpace(in.Address) == "" {
		return model.Customer{}, NewValidationError("address is required")
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return model.Customer{}, NewValidationError("contact number is required")
	}

	//ハッシュを保存（平文は保存しない）
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return model.Customer{}, err
	}

	c := model.Customer{
		ID:            u.idGen.NewID(),
		FullName:      name,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:  string(hashed),
		Address:       strings.TrimSpace(in.Address),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		CreatedAt:     u.clock.Now(),
		UpdatedAt:     u.clock.Now(),
	}

	if err := u.customers.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return model.Customer{}, NewValidationError("email already registered")
		}
		return model.Customer{}, err
	}

	c.PasswordHash = ""
	return c, nil
}

// 顧客ログイン
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (TokenOutput, error) {
	c, err := u.customers.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return TokenOutput{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenOutput{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) != nil {
		return TokenOutput{}, ErrInvalidCredentials
	}

	return u.issue(c.ID, RoleCustomer)
}

// 管理者ログイン
func (u *AuthUsecase) AdminLogin(ctx context.Context, username, password string) (TokenOutput, error) {
	a, err := u.admins.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repo.ErrNotFound) {
		return TokenOutput{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenOutput{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return TokenOutput{}, ErrInvalidCredentials
	}

	return u.issue(strconv.FormatInt(a.ID, 10), RoleAdmin)
}

func (u *AuthUsecase) issue(sub string, role string) (TokenOutput, error) {
	now := u.clock.Now()
	expiresAt := now.Add(u.accessTTL)

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return TokenOutput{}, err
	}

	return TokenOutput{
		AccessToken: signed,
		ExpiresIn:   int64(u.accessTTL.Seconds()),
		Role:        role,
		Subject:     sub,
	}, nil
}
