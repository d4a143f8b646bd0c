package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rigtrack/rigtrack-backend/api/responses"
	"github.com/rigtrack/rigtrack-backend/api/validators"
	"github.com/rigtrack/rigtrack-backend/internal/companies"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
)

type createCompanyRequest struct {
	CompanyCode  string  `json:"company_code" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Type         *string `json:"type"`
	Country      *string `json:"country"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Status       string  `json:"status"`
}

type updateCompanyRequest struct {
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	Country      *string `json:"country"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Status       *string `json:"status"`
}

// ListCompanies returns all companies with their active contract counts.
func ListCompanies(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
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

// CreateCompany registers a counterparty.
func CreateCompany(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
			return
		}

		var req createCompanyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Create(r.Context(), companies.CreateCompanyInput{
			CompanyCode:  strings.TrimSpace(req.CompanyCode),
			Name:         strings.TrimSpace(req.Name),
			Type:         req.Type,
			Country:      req.Country,
			ContactName:  req.ContactName,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
			Status:       enums.CompanyStatus(req.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": id})
	}
}

// UpdateCompany applies a partial update to a counterparty.
func UpdateCompany(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "companies service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCompanyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := companies.UpdateCompanyInput{
			Name:         req.Name,
			Type:         req.Type,
			Country:      req.Country,
			ContactName:  req.ContactName,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
		}
		if req.Status != nil {
			status := enums.CompanyStatus(*req.Status)
			patch.Status = &status
		}

		if err := svc.Update(r.Context(), id, patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
