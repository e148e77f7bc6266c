package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule is a manually created appointment with no backing order. Order-backed
// appointments are derived from the orders table on read and never stored here.
type Schedule struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	CustomerName string    `gorm:"not null"`
	ServiceName  string    `gorm:"not null"`
	Date         time.Time `gorm:"not null"`
	Time         string    `gorm:"type:varchar(5)"`
	Address      string    `gorm:"not null"`

	MandorID *uuid.UUID `gorm:"type:uuid;index"`
	Mandor   *Mandor    `gorm:"foreignKey:MandorID"`

	Status string `gorm:"type:varchar(30);not null;default:'awaiting_validation'"`

	gorm.Model
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
