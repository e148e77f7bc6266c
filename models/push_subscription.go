package models

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription stores a mandor's browser push endpoint so new assignments
// can be pushed to the dashboard.
type PushSubscription struct {
	Endpoint string    `gorm:"primaryKey"`
	MandorID uuid.UUID `gorm:"type:uuid;index;not null"`
	P256DH   string    `gorm:"not null"`
	Auth     string    `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
