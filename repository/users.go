package repository

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	// CreateWithKitchen creates the login account and its kitchen in one
	// transaction; a failed kitchen insert leaves no orphaned user behind.
	CreateWithKitchen(ctx context.Context, user models.User, kitchenName string) (models.User, models.Kitchen, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (r *GormUserRepository) CreateWithKitchen(ctx context.Context, user models.User, kitchenName string) (models.User, models.Kitchen, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	kitchen := models.Kitchen{
		ID:          uuid.New().String(),
		OwnerUserID: user.ID,
		Name:        kitchenName,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		if err := tx.Create(&kitchen).Error; err != nil {
			return fmt.Errorf("creating kitchen: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, models.Kitchen{}, err
	}
	return user, kitchen, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("finding user by username: %w", err)
	}
	return user, nil
}
