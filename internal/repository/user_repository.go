package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"userhub/internal/db"
	apperrors "userhub/internal/errors"
	"userhub/internal/model"
)

// UserRepository defines persistence operations over user records.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, query string) ([]model.User, error)
}

type userRepository struct {
	store *db.Store
}

// NewUserRepository builds a GORM-backed repository over the store adapter.
func NewUserRepository(store *db.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) conn() (*gorm.DB, error) {
	gormDB := r.store.DB()
	if gormDB == nil {
		return nil, apperrors.ErrStoreUnavailable
	}
	return gormDB, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	gormDB, err := r.conn()
	if err != nil {
		return err
	}
	return gormDB.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	gormDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := gormDB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	gormDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := gormDB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	gormDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := gormDB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	gormDB, err := r.conn()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := gormDB.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	gormDB, err := r.conn()
	if err != nil {
		return err
	}
	return gormDB.WithContext(ctx).Save(user).Error
}

// Delete removes a record by id; the boolean reports whether a row existed.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	gormDB, err := r.conn()
	if err != nil {
		return false, err
	}
	res := gormDB.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	gormDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	pattern := "%" + query + "%"
	var users []model.User
	if err := gormDB.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
