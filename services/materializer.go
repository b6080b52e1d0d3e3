package services

import (
	"context"
	"errors"
	"fmt"

	"prepboard/models"
	"prepboard/repository"
)

// DayTask is one task instance shown on the board, carrying the template's
// display name alongside the instance row.
type DayTask struct {
	models.TaskInstance
	Name string `json:"name"`
}

// Materializer computes the set of task instances a section shows on a given
// calendar day.
type Materializer struct {
	sections  repository.SectionRepository
	templates repository.TemplateRepository
	instances repository.InstanceRepository
}

func NewMaterializer(sections repository.SectionRepository, templates repository.TemplateRepository, instances repository.InstanceRepository) *Materializer {
	return &Materializer{sections: sections, templates: templates, instances: instances}
}

// DayTasks returns the instances for every template valid on date that has a
// materialized row. Templates with no row for the day are omitted, not
// created; creation happens at template-creation backfill or via an explicit
// BackfillDay sweep. The section is resolved within the caller's kitchen, so
// a foreign section id reads as not found. Any store error aborts the whole
// fetch.
func (m *Materializer) DayTasks(ctx context.Context, kitchenID, sectionID, date string) ([]DayTask, error) {
	templates, err := m.sectionTemplates(ctx, kitchenID, sectionID, date)
	if err != nil {
		return nil, err
	}

	var tasks []DayTask
	for _, template := range templates {
		if !template.Range().Contains(date) {
			continue
		}
		instance, err := m.instances.FindByTemplateAndDate(ctx, template.ID, date)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading instance for template %s: %w", template.ID, err)
		}
		tasks = append(tasks, DayTask{TaskInstance: instance, Name: template.DisplayName()})
	}
	return tasks, nil
}

// BackfillDay materializes the missing instances for every template valid on
// date, then returns the full day view. Safe to re-run.
func (m *Materializer) BackfillDay(ctx context.Context, kitchenID, sectionID, date string) ([]DayTask, error) {
	templates, err := m.sectionTemplates(ctx, kitchenID, sectionID, date)
	if err != nil {
		return nil, err
	}

	var tasks []DayTask
	for _, template := range templates {
		if !template.Range().Contains(date) {
			continue
		}
		instance, err := m.instances.EnsureExists(ctx, template.ID, date)
		if err != nil {
			return nil, fmt.Errorf("materializing instance for template %s: %w", template.ID, err)
		}
		tasks = append(tasks, DayTask{TaskInstance: instance, Name: template.DisplayName()})
	}
	return tasks, nil
}

func (m *Materializer) sectionTemplates(ctx context.Context, kitchenID, sectionID, date string) ([]models.TaskTemplate, error) {
	section, err := m.sections.FindByID(ctx, kitchenID, sectionID)
	if err != nil {
		return nil, err
	}
	templates, err := m.templates.ListBySectionAndDate(ctx, section.ID, date)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	return templates, nil
}
