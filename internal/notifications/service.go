package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

const defaultListLimit = 50

// Inbox bundles a user's recent notifications with the unread counter.
type Inbox struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

// CreateInput carries the fields accepted when pushing a notification.
type CreateInput struct {
	UserID  uuid.UUID
	Title   string
	Message *string
	Type    enums.NotificationType
	Link    *string
}

// Service defines the per-user notification operations.
type Service interface {
	Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*Inbox, error)
	Push(ctx context.Context, input CreateInput) error
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires the notification dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Inbox(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*Inbox, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}

	rows, err := s.repo.ListByUser(ctx, userID, defaultListLimit, unreadOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}
	if rows == nil {
		rows = []models.Notification{}
	}
	return &Inbox{Notifications: rows, UnreadCount: unread}, nil
}

func (s *service) Push(ctx context.Context, input CreateInput) error {
	if input.UserID == uuid.Nil || input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and title are required")
	}

	kind := input.Type
	if kind == "" {
		kind = enums.NotificationTypeInfo
	}
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	userID := input.UserID
	notification := &models.Notification{
		UserID:  &userID,
		Title:   input.Title,
		Message: input.Message,
		Type:    kind,
		Link:    input.Link,
	}
	if err := s.repo.Insert(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert notification")
	}
	return nil
}

func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	affected, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	affected, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete notification")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}
