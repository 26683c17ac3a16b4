package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID     `gorm:"primaryKey" json:"id"`
	Username     string        `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string        `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Calculations []Calculation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"calculations,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Calculation is the single-table record shared by every variant. Type is the
// discriminator; Inputs is kept as raw JSON so malformed state survives a
// round-trip and is rejected only when a result is requested.
type Calculation struct {
	ID        uuid.UUID      `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"index;not null" json:"user_id"`
	Type      Type           `gorm:"size:32;index;not null" json:"type"`
	Inputs    datatypes.JSON `gorm:"not null" json:"inputs"`
	Result    *float64       `json:"result,omitempty"`
	User      *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Calculation) TableName() string { return "calculations" }

func (c *Calculation) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
