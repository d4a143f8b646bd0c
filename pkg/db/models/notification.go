package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// Notification represents an in-app message addressed to a user.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID             `gorm:"column:user_id;type:uuid;index"`
	Title     string                 `gorm:"column:title;not null"`
	Message   *string                `gorm:"column:message"`
	Type      enums.NotificationType `gorm:"column:type;default:info"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false"`
	Link      *string                `gorm:"column:link"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
