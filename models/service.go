package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a priced jasa offering shown in the catalog.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	Category    string  `gorm:"default:'Umum'"`
	Price       float64 `gorm:"type:decimal(12,2);not null"`
	Unit        string  `gorm:"default:'per pekerjaan'"`
	ImageURL    string
	IsActive    bool `gorm:"default:true"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
