package models

import (
	"time"
)

// Section is a date-bounded menu grouping. Tasks only show up on days the
// owning section is valid.
type Section struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	KitchenID string         `gorm:"type:uuid;not null;index" json:"kitchen_id"`
	Kitchen   *Kitchen       `gorm:"foreignKey:KitchenID" json:"kitchen,omitempty"`
	Name      string         `gorm:"not null;size:200" json:"name"`
	StartDate string         `gorm:"not null;size:10" json:"start_date"`
	EndDate   string         `gorm:"not null;size:10" json:"end_date"`
	Templates []TaskTemplate `gorm:"foreignKey:SectionID" json:"tasks,omitempty"`
}

func (s *Section) Range() DateRange {
	return DateRange{Start: s.StartDate, End: s.EndDate}
}
