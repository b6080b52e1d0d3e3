package models

import (
	"time"
)

// Kitchen is the tenant boundary. Every section, profile and task in the
// system hangs off exactly one kitchen.
type Kitchen struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	OwnerUserID string    `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	Owner       *User     `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
	Name        string    `gorm:"not null;size:200" json:"name"`
}
