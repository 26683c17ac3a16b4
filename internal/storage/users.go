package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"calculation-store/internal/models"
)

type UserRepo struct {
	db *gorm.DB
}

// Create inserts u and fills in its id and timestamps.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Omit("Calculations").Create(u).Error; err != nil {
		return mapError(err, "user", u.Username)
	}
	return nil
}

// Get loads a user together with the calculations it owns, oldest first.
func (r *UserRepo) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Calculations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, mapError(err, "user", username)
	}
	return &u, nil
}

// Delete removes the user. The database cascades the delete to every
// calculation the user owns within the same statement.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return mapError(res.Error, "user", id)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "user", id)
	}
	return nil
}
