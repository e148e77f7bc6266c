package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portfolio is a finished project shown in the marketing gallery.
type Portfolio struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string
	Category    string `gorm:"default:'Renovasi'"`
	Location    string
	ImageURL    string
	CompletedAt *time.Time

	gorm.Model
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
