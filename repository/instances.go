package repository

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstanceRepository interface {
	// FindByID returns the instance only when it belongs to the kitchen,
	// resolved through its template's section. A foreign id reads as
	// ErrNotFound.
	FindByID(ctx context.Context, kitchenID, id string) (models.TaskInstance, error)
	// FindByTemplateAndDate returns the single instance for the pair, or
	// ErrNotFound when none was ever materialized.
	FindByTemplateAndDate(ctx context.Context, templateID, date string) (models.TaskInstance, error)
	// EnsureExists materializes the instance for (templateID, date) if it is
	// missing and returns it either way. A concurrent materialization losing
	// the insert race reads back the winner's row.
	EnsureExists(ctx context.Context, templateID, date string) (models.TaskInstance, error)
	UpdateStatus(ctx context.Context, kitchenID, id string, status models.TaskStatus) (models.TaskInstance, error)
	UpdateAssignees(ctx context.Context, kitchenID, id string, profileIDs []string, status models.TaskStatus) (models.TaskInstance, error)
}

type GormInstanceRepository struct {
	db *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) *GormInstanceRepository {
	return &GormInstanceRepository{db: db}
}

func (r *GormInstanceRepository) FindByID(ctx context.Context, kitchenID, id string) (models.TaskInstance, error) {
	var instance models.TaskInstance
	err := r.db.WithContext(ctx).
		Where("id = ? AND template_id IN (?)", id, kitchenTemplateIDs(r.db, kitchenID)).
		First(&instance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TaskInstance{}, ErrNotFound
	}
	if err != nil {
		return models.TaskInstance{}, fmt.Errorf("finding instance: %w", err)
	}
	return instance, nil
}

func (r *GormInstanceRepository) FindByTemplateAndDate(ctx context.Context, templateID, date string) (models.TaskInstance, error) {
	var instance models.TaskInstance
	err := r.db.WithContext(ctx).
		First(&instance, "template_id = ? AND date = ?", templateID, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TaskInstance{}, ErrNotFound
	}
	if err != nil {
		return models.TaskInstance{}, fmt.Errorf("finding instance by template and date: %w", err)
	}
	return instance, nil
}

func (r *GormInstanceRepository) EnsureExists(ctx context.Context, templateID, date string) (models.TaskInstance, error) {
	if !models.ValidDate(date) {
		return models.TaskInstance{}, invalidField("date", "must be YYYY-MM-DD")
	}

	existing, err := r.FindByTemplateAndDate(ctx, templateID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.TaskInstance{}, err
	}

	instance := models.TaskInstance{
		ID:         uuid.New().String(),
		TemplateID: templateID,
		Date:       date,
		Status:     models.StatusActive,
	}
	instance.SetAssignees(nil)

	// A concurrent materialization may insert between the read and this
	// create; DO NOTHING on the (template_id, date) unique index lets the
	// winner's row stand, and the read-back below returns it.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&instance).Error
	if err != nil {
		return models.TaskInstance{}, fmt.Errorf("ensuring instance: %w", err)
	}

	return r.FindByTemplateAndDate(ctx, templateID, date)
}

func (r *GormInstanceRepository) UpdateStatus(ctx context.Context, kitchenID, id string, status models.TaskStatus) (models.TaskInstance, error) {
	if !status.Valid() {
		return models.TaskInstance{}, invalidField("status", "unknown status "+string(status))
	}
	instance, err := r.FindByID(ctx, kitchenID, id)
	if err != nil {
		return models.TaskInstance{}, err
	}

	instance.Status = status
	// Deactivating a task also releases whoever held it; re-activating does
	// not restore prior assignees.
	if status == models.StatusInactive {
		instance.SetAssignees(nil)
	}
	if err := r.db.WithContext(ctx).Save(&instance).Error; err != nil {
		return models.TaskInstance{}, fmt.Errorf("updating instance status: %w", err)
	}
	return instance, nil
}

func (r *GormInstanceRepository) UpdateAssignees(ctx context.Context, kitchenID, id string, profileIDs []string, status models.TaskStatus) (models.TaskInstance, error) {
	if !status.Valid() {
		return models.TaskInstance{}, invalidField("status", "unknown status "+string(status))
	}
	instance, err := r.FindByID(ctx, kitchenID, id)
	if err != nil {
		return models.TaskInstance{}, err
	}

	instance.SetAssignees(profileIDs)
	instance.Status = status
	if err := r.db.WithContext(ctx).Save(&instance).Error; err != nil {
		return models.TaskInstance{}, fmt.Errorf("updating instance assignees: %w", err)
	}
	return instance, nil
}
