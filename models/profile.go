package models

import (
	"strings"
	"time"
)

// Profile is a named worker within a kitchen. It is not a login identity;
// several profiles can share one account.
type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	KitchenID string    `gorm:"type:uuid;not null;index" json:"kitchen_id"`
	Kitchen   *Kitchen  `gorm:"foreignKey:KitchenID" json:"kitchen,omitempty"`
	FirstName string    `gorm:"not null;size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
