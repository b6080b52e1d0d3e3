package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TaskStatus is the lifecycle state of a single day's task instance.
type TaskStatus string

const (
	StatusActive     TaskStatus = "active"
	StatusInProgress TaskStatus = "in progress"
	StatusDone       TaskStatus = "done"
	StatusOutOfStock TaskStatus = "out of stock"
	StatusInactive   TaskStatus = "inactive"
	StatusSkip       TaskStatus = "skip"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInProgress, StatusDone, StatusOutOfStock, StatusInactive, StatusSkip:
		return true
	}
	return false
}

// TaskInstance is the per-day materialization of a template. At most one
// instance exists per (template, date); its date always falls inside the
// template's validity range.
type TaskInstance struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	TemplateID string         `gorm:"type:uuid;not null;uniqueIndex:idx_task_instances_template_date" json:"template_id"`
	Template   *TaskTemplate  `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	Date       string         `gorm:"not null;size:10;uniqueIndex:idx_task_instances_template_date" json:"date"`
	Status     TaskStatus     `gorm:"not null;size:20;default:'active'" json:"status"`
	AssignedTo datatypes.JSON `gorm:"not null;default:'[]'" json:"assigned_to"`
}

// Assignees decodes the assignee profile ids. A malformed or empty column
// reads as no assignees.
func (i *TaskInstance) Assignees() []string {
	if len(i.AssignedTo) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(i.AssignedTo, &ids); err != nil {
		return nil
	}
	return ids
}

func (i *TaskInstance) SetAssignees(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, _ := json.Marshal(ids)
	i.AssignedTo = datatypes.JSON(raw)
}

func (i *TaskInstance) IsAssignedTo(profileID string) bool {
	for _, id := range i.Assignees() {
		if id == profileID {
			return true
		}
	}
	return false
}
