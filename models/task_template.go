package models

import (
	"strings"
	"time"
)

// TaskTemplate is a recurring task definition scoped to one section, valid
// over its own [StartDate, EndDate]. One instance exists per day in range.
type TaskTemplate struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SectionID string    `gorm:"type:uuid;not null;index" json:"section_id"`
	Section   *Section  `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	StartDate string    `gorm:"not null;size:10" json:"start_date"`
	EndDate   string    `gorm:"not null;size:10" json:"end_date"`
}

func (t *TaskTemplate) Range() DateRange {
	return DateRange{Start: t.StartDate, End: t.EndDate}
}

// DisplayName returns the template name with any legacy uniqueness suffix
// stripped.
func (t *TaskTemplate) DisplayName() string {
	return CleanTaskName(t.Name)
}

// CleanTaskName strips the trailing timestamp suffix legacy data carried on
// task names. A name ending in a space followed by a run of ten or more
// digits is "<display name> <opaque suffix>"; anything else is returned
// unchanged. New rows store plain display names, the row id is the
// uniqueness handle.
func CleanTaskName(name string) string {
	idx := strings.LastIndexByte(name, ' ')
	if idx <= 0 {
		return name
	}
	suffix := name[idx+1:]
	if len(suffix) < 10 {
		return name
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return name
		}
	}
	return name[:idx]
}
