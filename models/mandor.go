package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mandor is a field supervisor on the roster. A roster entry may optionally be
// linked to a login account so the mandor can use the dashboard directly.
type Mandor struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID *uuid.UUID `gorm:"type:uuid;index"`

	Name     string `gorm:"not null"`
	Phone    string `gorm:"not null"`
	Skill    string `gorm:"default:'Umum'"`
	Address  string
	PhotoURL string
	IsActive bool `gorm:"default:true"`

	Orders []Order `gorm:"foreignKey:MandorID"`

	gorm.Model
}

func (m *Mandor) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
