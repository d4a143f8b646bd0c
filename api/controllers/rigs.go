package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rigtrack/rigtrack-backend/api/responses"
	"github.com/rigtrack/rigtrack-backend/api/validators"
	"github.com/rigtrack/rigtrack-backend/internal/rigs"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
)

type createRigRequest struct {
	RigCode       string  `json:"rig_code" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Type          *string `json:"type"`
	CompanyID     *string `json:"company_id"`
	Location      *string `json:"location"`
	DepthCapacity *string `json:"depth_capacity"`
	Status        string  `json:"status"`
}

type updateRigRequest struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	CompanyID     *string `json:"company_id"`
	Location      *string `json:"location"`
	DepthCapacity *string `json:"depth_capacity"`
	Status        *string `json:"status"`
}

// ListRigs returns all rigs with company names and asset counts.
func ListRigs(svc rigs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rigs service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreateRig registers a rig.
func CreateRig(svc rigs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rigs service unavailable"))
			return
		}

		var req createRigRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		companyID, err := parseOptionalUUID(req.CompanyID, "company_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Create(r.Context(), rigs.CreateRigInput{
			RigCode:       strings.TrimSpace(req.RigCode),
			Name:          strings.TrimSpace(req.Name),
			Type:          req.Type,
			CompanyID:     companyID,
			Location:      req.Location,
			DepthCapacity: req.DepthCapacity,
			Status:        enums.RigStatus(req.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": id})
	}
}

// UpdateRig applies a partial update to a rig.
func UpdateRig(svc rigs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rigs service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateRigRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := rigs.UpdateRigInput{
			Name:          req.Name,
			Type:          req.Type,
			Location:      req.Location,
			DepthCapacity: req.DepthCapacity,
		}
		if patch.CompanyID, err = parseOptionalUUID(req.CompanyID, "company_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Status != nil {
			status := enums.RigStatus(*req.Status)
			patch.Status = &status
		}

		if err := svc.Update(r.Context(), id, patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
