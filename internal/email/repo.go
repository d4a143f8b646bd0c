package email

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

// LogRow is an email log entry joined with the sender's name.
type LogRow struct {
	ID         uuid.UUID  `gorm:"column:id" json:"id"`
	SentBy     *uuid.UUID `gorm:"column:sent_by" json:"sent_by"`
	SenderName *string    `gorm:"column:sender_name" json:"sender_name"`
	Recipients string     `gorm:"column:recipients" json:"recipients"`
	Subject    string     `gorm:"column:subject" json:"subject"`
	Body       *string    `gorm:"column:body" json:"body"`
	AlertType  *string    `gorm:"column:alert_type" json:"alert_type"`
	Status     string     `gorm:"column:status" json:"status"`
	SentAt     time.Time  `gorm:"column:sent_at" json:"sent_at"`
}

// Repository exposes persistence helpers for the outbound email trail.
type Repository interface {
	Insert(ctx context.Context, log *models.EmailLog) error
	List(ctx context.Context, params pagination.Params) ([]LogRow, int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an email log repository bound to the provided
// database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Insert(ctx context.Context, log *models.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List runs the page query and the total count concurrently.
func (r *repositoryImpl) List(ctx context.Context, params pagination.Params) ([]LogRow, int64, error) {
	var (
		rows  []LogRow
		total int64
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Table("email_logs AS e").
			Select("e.*, u.name AS sender_name").
			Joins("LEFT JOIN users u ON e.sent_by = u.id").
			Order("e.sent_at DESC").
			Limit(params.Limit).
			Offset(params.Offset()).
			Find(&rows).Error
	})

	group.Go(func() error {
		return r.db.WithContext(groupCtx).
			Model(&models.EmailLog{}).
			Count(&total).Error
	})

	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
