package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog records an outbound alert email and its delivery status.
type EmailLog struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SentBy     *uuid.UUID `gorm:"column:sent_by;type:uuid"`
	Recipients string     `gorm:"column:recipients;not null"`
	Subject    string     `gorm:"column:subject;not null"`
	Body       *string    `gorm:"column:body"`
	AlertType  *string    `gorm:"column:alert_type"`
	Status     string     `gorm:"column:status;default:sent"`
	SentAt     time.Time  `gorm:"column:sent_at;autoCreateTime"`
}
