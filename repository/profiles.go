package repository

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile models.Profile) (models.Profile, error)
	// FindByID resolves the profile only within the given kitchen.
	FindByID(ctx context.Context, kitchenID, id string) (models.Profile, error)
	ListByKitchen(ctx context.Context, kitchenID string) ([]models.Profile, error)
	Update(ctx context.Context, kitchenID, id, firstName, lastName string) (models.Profile, error)
	Delete(ctx context.Context, kitchenID, id string) error
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Create(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.FirstName == "" {
		return models.Profile{}, invalidField("first_name", "must not be empty")
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return models.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

func (r *GormProfileRepository) FindByID(ctx context.Context, kitchenID, id string) (models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ? AND kitchen_id = ?", id, kitchenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("finding profile: %w", err)
	}
	return profile, nil
}

func (r *GormProfileRepository) ListByKitchen(ctx context.Context, kitchenID string) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ?", kitchenID).
		Order("created_at asc").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

func (r *GormProfileRepository) Update(ctx context.Context, kitchenID, id, firstName, lastName string) (models.Profile, error) {
	if firstName == "" {
		return models.Profile{}, invalidField("first_name", "must not be empty")
	}
	profile, err := r.FindByID(ctx, kitchenID, id)
	if err != nil {
		return models.Profile{}, err
	}
	profile.FirstName = firstName
	profile.LastName = lastName
	if err := r.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return models.Profile{}, fmt.Errorf("updating profile: %w", err)
	}
	return profile, nil
}

func (r *GormProfileRepository) Delete(ctx context.Context, kitchenID, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ? AND kitchen_id = ?", id, kitchenID)
	if result.Error != nil {
		return fmt.Errorf("deleting profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
