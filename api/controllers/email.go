package controllers

import (
	"net/http"

	"github.com/rigtrack/rigtrack-backend/api/responses"
	"github.com/rigtrack/rigtrack-backend/api/validators"
	"github.com/rigtrack/rigtrack-backend/internal/email"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

type sendAlertRequest struct {
	Recipients []string `json:"recipients" validate:"required,min=1"`
	Subject    string   `json:"subject" validate:"required"`
	Body       string   `json:"body"`
	AlertType  *string  `json:"alert_type"`
}

// SendAlertEmail delivers an alert email and records the attempt.
func SendAlertEmail(svc email.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "email service unavailable"))
			return
		}

		var req sendAlertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		err := svc.SendAlert(r.Context(), email.SendAlertInput{
			Recipients: req.Recipients,
			Subject:    req.Subject,
			Body:       req.Body,
			AlertType:  req.AlertType,
			SentBy:     actorID(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

// ListEmailLogs returns the paginated outbound email trail.
func ListEmailLogs(svc email.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "email service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Logs(r.Context(), page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
