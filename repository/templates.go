package repository

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	// Create inserts the template and backfills one task instance for every
	// day in [startDate, endDate]. The backfill is an idempotent
	// ensure-exists per day; re-running it creates nothing new.
	Create(ctx context.Context, sectionID, name, startDate, endDate string) (models.TaskTemplate, error)
	// FindByID resolves the template only within the kitchen's sections.
	FindByID(ctx context.Context, kitchenID, id string) (models.TaskTemplate, error)
	ListBySectionAndDate(ctx context.Context, sectionID, date string) ([]models.TaskTemplate, error)
	// Update overwrites name and end date; the start date is immutable.
	// Shrinking the end date prunes the instances past it, so no instance
	// ever sits outside its template's range.
	Update(ctx context.Context, kitchenID, id, name, endDate string) (models.TaskTemplate, error)
}

type GormTemplateRepository struct {
	db        *gorm.DB
	instances InstanceRepository
}

func NewTemplateRepository(db *gorm.DB, instances InstanceRepository) *GormTemplateRepository {
	return &GormTemplateRepository{db: db, instances: instances}
}

func (r *GormTemplateRepository) Create(ctx context.Context, sectionID, name, startDate, endDate string) (models.TaskTemplate, error) {
	if name == "" {
		return models.TaskTemplate{}, invalidField("name", "must not be empty")
	}
	if err := validateRange(startDate, endDate); err != nil {
		return models.TaskTemplate{}, err
	}

	template := models.TaskTemplate{
		ID:        uuid.New().String(),
		SectionID: sectionID,
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := r.db.WithContext(ctx).Create(&template).Error; err != nil {
		return models.TaskTemplate{}, fmt.Errorf("creating template: %w", err)
	}

	// Day-by-day backfill. A failure partway leaves earlier days committed;
	// the ensure-exists form makes re-running safe.
	for _, day := range template.Range().Days() {
		if _, err := r.instances.EnsureExists(ctx, template.ID, day); err != nil {
			return models.TaskTemplate{}, fmt.Errorf("backfilling %s: %w", day, err)
		}
	}

	return template, nil
}

func (r *GormTemplateRepository) FindByID(ctx context.Context, kitchenID, id string) (models.TaskTemplate, error) {
	var template models.TaskTemplate
	err := r.db.WithContext(ctx).
		Where("id = ? AND section_id IN (?)", id, kitchenSectionIDs(r.db, kitchenID)).
		First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TaskTemplate{}, ErrNotFound
	}
	if err != nil {
		return models.TaskTemplate{}, fmt.Errorf("finding template: %w", err)
	}
	return template, nil
}

func (r *GormTemplateRepository) ListBySectionAndDate(ctx context.Context, sectionID, date string) ([]models.TaskTemplate, error) {
	if !models.ValidDate(date) {
		return nil, invalidField("date", "must be YYYY-MM-DD")
	}

	var templates []models.TaskTemplate
	err := r.db.WithContext(ctx).
		Where("section_id = ? AND start_date <= ? AND end_date >= ?", sectionID, date, date).
		Order("created_at asc").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return templates, nil
}

func (r *GormTemplateRepository) Update(ctx context.Context, kitchenID, id, name, endDate string) (models.TaskTemplate, error) {
	if name == "" {
		return models.TaskTemplate{}, invalidField("name", "must not be empty")
	}
	template, err := r.FindByID(ctx, kitchenID, id)
	if err != nil {
		return models.TaskTemplate{}, err
	}
	if err := validateRange(template.StartDate, endDate); err != nil {
		return models.TaskTemplate{}, err
	}

	template.Name = name
	template.EndDate = endDate
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&template).Error; err != nil {
			return fmt.Errorf("updating template: %w", err)
		}
		// A shrunken range must not strand instances past the new end.
		err := tx.Where("template_id = ? AND date > ?", template.ID, template.EndDate).
			Delete(&models.TaskInstance{}).Error
		if err != nil {
			return fmt.Errorf("pruning out-of-range instances: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.TaskTemplate{}, err
	}
	return template, nil
}
