package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rigtrack/rigtrack-backend/api/middleware"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

// actorID returns the authenticated user's id, or nil on unauthenticated
// routes.
func actorID(r *http.Request) *uuid.UUID {
	id := middleware.UserIDFromContext(r.Context())
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := uuid.Parse(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	return &value, nil
}
