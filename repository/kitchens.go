package repository

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KitchenRepository interface {
	Create(ctx context.Context, kitchen models.Kitchen) (models.Kitchen, error)
	FindByID(ctx context.Context, id string) (models.Kitchen, error)
	FindByOwner(ctx context.Context, userID string) (models.Kitchen, error)
}

type GormKitchenRepository struct {
	db *gorm.DB
}

func NewKitchenRepository(db *gorm.DB) *GormKitchenRepository {
	return &GormKitchenRepository{db: db}
}

func (r *GormKitchenRepository) Create(ctx context.Context, kitchen models.Kitchen) (models.Kitchen, error) {
	if kitchen.ID == "" {
		kitchen.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&kitchen).Error; err != nil {
		return models.Kitchen{}, fmt.Errorf("creating kitchen: %w", err)
	}
	return kitchen, nil
}

func (r *GormKitchenRepository) FindByID(ctx context.Context, id string) (models.Kitchen, error) {
	var kitchen models.Kitchen
	err := r.db.WithContext(ctx).First(&kitchen, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Kitchen{}, ErrNotFound
	}
	if err != nil {
		return models.Kitchen{}, fmt.Errorf("finding kitchen: %w", err)
	}
	return kitchen, nil
}

func (r *GormKitchenRepository) FindByOwner(ctx context.Context, userID string) (models.Kitchen, error) {
	var kitchen models.Kitchen
	err := r.db.WithContext(ctx).First(&kitchen, "owner_user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Kitchen{}, ErrNotFound
	}
	if err != nil {
		return models.Kitchen{}, fmt.Errorf("finding kitchen by owner: %w", err)
	}
	return kitchen, nil
}
