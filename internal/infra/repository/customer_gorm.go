package repository

import (
	"context"
	"errors"

	"grocery/internal/domain/model"
	repo "grocery/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, id string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *CustomerGormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) error {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		//email重複（unique violation）を区別して返す
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repo.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *CustomerGormRepository) Update(ctx context.Context, c model.Customer) error {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"full_name":      c.FullName,
			"email":          c.Email,
			"password_hash":  c.PasswordHash,
			"address":        c.Address,
			"contact_number": c.ContactNumber,
		})

	if res.Error != nil {
		//email変更時の重複もCreateと同じ扱い
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "23505" {
			return repo.ErrDuplicateEmail
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	var items []model.Customer
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error
	if err != nil {
		return []model.Customer{}, err
	}
	return items, nil
}

func (r *CustomerGormRepository) SearchByName(ctx context.Context, name string) ([]model.Customer, error) {
	var items []model.Customer
	err := r.db.WithContext(ctx).
		Where("full_name ILIKE ?", "%"+name+"%").
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Customer{}, err
	}
	return items, nil
}

type AdminUserGormRepository struct {
	db *gorm.DB
}

func NewAdminUserGormRepository(db *gorm.DB) *AdminUserGormRepository {
	return &AdminUserGormRepository{db: db}
}

func (r *AdminUserGormRepository) FindByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	var a model.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AdminUser{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AdminUser{}, err
	}
	return a, nil
}

func (r *AdminUserGormRepository) Create(ctx context.Context, a model.AdminUser) error {
	return r.db.WithContext(ctx).Create(&a).Error
}
