package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a customer booking (pesanan). Placing an order is what creates the
// order-backed entry on the scheduling calendar, so the display fields the
// dashboard needs (customer and service names) are denormalized onto the row.
type Order struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderNo string    `gorm:"uniqueIndex;not null"`

	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerName string    `gorm:"not null"`
	ServiceID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceName  string    `gorm:"not null"`

	Date    time.Time `gorm:"not null"` // calendar date, stored at local midnight
	Time    string    `gorm:"type:varchar(5)"`
	Address string    `gorm:"not null"`
	Phone   string

	MandorID *uuid.UUID `gorm:"type:uuid;index"`
	Mandor   *Mandor    `gorm:"foreignKey:MandorID"`

	Status     string `gorm:"type:varchar(20);not null;default:'NEED_VALIDATION'"`
	Notes      string
	ReceiptURL string

	gorm.Model
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
