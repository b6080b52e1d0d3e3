package repository

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionRepository interface {
	// ListByKitchenAndDate returns the sections whose validity range
	// contains date, each preloaded with the templates valid on that date.
	ListByKitchenAndDate(ctx context.Context, kitchenID, date string) ([]models.Section, error)
	Create(ctx context.Context, kitchenID, name, startDate, endDate string) (models.Section, error)
	// FindByID resolves the section only within the given kitchen; a
	// foreign id reads as ErrNotFound.
	FindByID(ctx context.Context, kitchenID, id string) (models.Section, error)
	// Update overwrites name and end date only; the start date is immutable
	// after creation.
	Update(ctx context.Context, kitchenID, id, name, endDate string) (models.Section, error)
	// DeleteWithCheck deletes the section unless it still owns templates, in
	// which case it returns ErrSectionHasTasks. Count and delete run in one
	// transaction so a template created concurrently cannot be orphaned.
	DeleteWithCheck(ctx context.Context, kitchenID, id string) error
	CountTemplates(ctx context.Context, sectionID string) (int64, error)
}

type GormSectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

func validateRange(startDate, endDate string) error {
	if !models.ValidDate(startDate) {
		return invalidField("start_date", "must be YYYY-MM-DD")
	}
	if !models.ValidDate(endDate) {
		return invalidField("end_date", "must be YYYY-MM-DD")
	}
	if startDate > endDate {
		return invalidField("end_date", "must not precede start_date")
	}
	return nil
}

func (r *GormSectionRepository) ListByKitchenAndDate(ctx context.Context, kitchenID, date string) ([]models.Section, error) {
	if !models.ValidDate(date) {
		return nil, invalidField("date", "must be YYYY-MM-DD")
	}

	var sections []models.Section
	err := r.db.WithContext(ctx).
		Preload("Templates", "start_date <= ? AND end_date >= ?", date, date).
		Where("kitchen_id = ? AND start_date <= ? AND end_date >= ?", kitchenID, date, date).
		Order("created_at asc").
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	return sections, nil
}

func (r *GormSectionRepository) Create(ctx context.Context, kitchenID, name, startDate, endDate string) (models.Section, error) {
	if name == "" {
		return models.Section{}, invalidField("name", "must not be empty")
	}
	if err := validateRange(startDate, endDate); err != nil {
		return models.Section{}, err
	}

	section := models.Section{
		ID:        uuid.New().String(),
		KitchenID: kitchenID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := r.db.WithContext(ctx).Create(&section).Error; err != nil {
		return models.Section{}, fmt.Errorf("creating section: %w", err)
	}
	return section, nil
}

func (r *GormSectionRepository) FindByID(ctx context.Context, kitchenID, id string) (models.Section, error) {
	var section models.Section
	err := r.db.WithContext(ctx).First(&section, "id = ? AND kitchen_id = ?", id, kitchenID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Section{}, ErrNotFound
	}
	if err != nil {
		return models.Section{}, fmt.Errorf("finding section: %w", err)
	}
	return section, nil
}

func (r *GormSectionRepository) Update(ctx context.Context, kitchenID, id, name, endDate string) (models.Section, error) {
	if name == "" {
		return models.Section{}, invalidField("name", "must not be empty")
	}
	section, err := r.FindByID(ctx, kitchenID, id)
	if err != nil {
		return models.Section{}, err
	}
	if err := validateRange(section.StartDate, endDate); err != nil {
		return models.Section{}, err
	}

	section.Name = name
	section.EndDate = endDate
	if err := r.db.WithContext(ctx).Save(&section).Error; err != nil {
		return models.Section{}, fmt.Errorf("updating section: %w", err)
	}
	return section, nil
}

func (r *GormSectionRepository) DeleteWithCheck(ctx context.Context, kitchenID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section models.Section
		if err := tx.First(&section, "id = ? AND kitchen_id = ?", id, kitchenID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("finding section: %w", err)
		}

		var count int64
		if err := tx.Model(&models.TaskTemplate{}).Where("section_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("counting templates: %w", err)
		}
		if count > 0 {
			return ErrSectionHasTasks
		}

		if err := tx.Delete(&section).Error; err != nil {
			return fmt.Errorf("deleting section: %w", err)
		}
		return nil
	})
}

func (r *GormSectionRepository) CountTemplates(ctx context.Context, sectionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TaskTemplate{}).
		Where("section_id = ?", sectionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return count, nil
}
