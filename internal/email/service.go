package email

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

const (
	statusSent   = "sent"
	statusFailed = "failed"
)

// SendAlertInput carries an outbound alert addressed to one or more
// recipients.
type SendAlertInput struct {
	Recipients []string
	Subject    string
	Body       string
	AlertType  *string
	SentBy     *uuid.UUID
}

// LogsResult carries one page of the email trail.
type LogsResult struct {
	Rows       []LogRow        `json:"rows"`
	Pagination pagination.Meta `json:"pagination"`
}

// Service defines the alert email operations.
type Service interface {
	SendAlert(ctx context.Context, input SendAlertInput) error
	Logs(ctx context.Context, page, limit int) (*LogsResult, error)
}

type service struct {
	mailer Mailer
	repo   Repository
	logg   *logger.Logger
}

// NewService wires the alert email dependencies.
func NewService(mailer Mailer, repo Repository, logg *logger.Logger) (Service, error) {
	if mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "email log repository required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{mailer: mailer, repo: repo, logg: logg}, nil
}

// SendAlert delivers the message and records the attempt. A failed
// delivery still writes a log row so operators can see what bounced.
func (s *service) SendAlert(ctx context.Context, input SendAlertInput) error {
	recipients := make([]string, 0, len(input.Recipients))
	for _, r := range input.Recipients {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	if len(recipients) == 0 || strings.TrimSpace(input.Subject) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipients and subject are required")
	}

	sendErr := s.mailer.Send(recipients, input.Subject, input.Body)

	status := statusSent
	if sendErr != nil {
		status = statusFailed
		s.logg.Error(ctx, "alert email delivery failed", sendErr)
	}

	body := input.Body
	log := &models.EmailLog{
		SentBy:     input.SentBy,
		Recipients: strings.Join(recipients, ", "),
		Subject:    input.Subject,
		Body:       &body,
		AlertType:  input.AlertType,
		Status:     status,
	}
	logErr := s.repo.Insert(ctx, log)

	if err := multierr.Combine(sendErr, logErr); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send alert email")
	}
	return nil
}

func (s *service) Logs(ctx context.Context, page, limit int) (*LogsResult, error) {
	params := pagination.Normalize(page, limit)

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list email logs")
	}
	return &LogsResult{
		Rows:       rows,
		Pagination: pagination.NewMeta(params, total),
	}, nil
}
