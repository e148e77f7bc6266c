package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RabDraft     = "draft"
	RabSubmitted = "submitted"
	RabApproved  = "approved"
	RabRejected  = "rejected"
)

// Rab is an itemized budget proposal (Rencana Anggaran Biaya) submitted by a
// mandor for approval. Total is a cache of the sum over Items and is always
// recomputed from them when the proposal is saved.
type Rab struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	MandorID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Mandor   *Mandor    `gorm:"foreignKey:MandorID"`
	OrderID  *uuid.UUID `gorm:"type:uuid;index"`

	ProjectName string    `gorm:"not null"`
	Date        time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	Notes       string
	Status      string  `gorm:"type:varchar(20);not null;default:'draft'"`
	Total       float64 `gorm:"type:decimal(14,2);not null"`

	Items []RabItem `gorm:"foreignKey:RabID"`

	gorm.Model
}

type RabItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	RabID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"not null"`
	Quantity   int       `gorm:"default:1"`
	UnitPrice  float64   `gorm:"type:decimal(14,2);not null"`
	TotalPrice float64   `gorm:"type:decimal(14,2);not null"`
}

func (r *Rab) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (i *RabItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
