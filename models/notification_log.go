// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index"`
	Recipient    string     `gorm:"type:varchar(30)"`
	Channel      string     `gorm:"type:varchar(20)"` // whatsapp, sms
	Type         string     `gorm:"type:varchar(30)"` // assignment, status_change, agenda
	Message      string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string     `gorm:"type:text"`
	SentAt       time.Time
	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
