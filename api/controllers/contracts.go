package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rigtrack/rigtrack-backend/api/responses"
	"github.com/rigtrack/rigtrack-backend/api/validators"
	"github.com/rigtrack/rigtrack-backend/internal/contracts"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
)

type createContractRequest struct {
	ContractNo string  `json:"contract_no" validate:"required"`
	CompanyID  *string `json:"company_id"`
	RigID      *string `json:"rig_id"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    string  `json:"end_date" validate:"required"`
	ValueUSD   *string `json:"value_usd"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

type updateContractRequest struct {
	CompanyID *string `json:"company_id"`
	RigID     *string `json:"rig_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	ValueUSD  *string `json:"value_usd"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

// ListContracts returns contracts with counterparty names and asset counts.
func ListContracts(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}

		query := r.URL.Query()
		rows, err := svc.List(r.Context(), contracts.ListFilter{
			Search: strings.TrimSpace(query.Get("search")),
			Status: strings.TrimSpace(query.Get("status")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CreateContract registers a contract.
func CreateContract(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}

		var req createContractRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, err := parseDate(req.StartDate, "start_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := parseDate(req.EndDate, "end_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := contracts.CreateContractInput{
			ContractNo: strings.TrimSpace(req.ContractNo),
			StartDate:  start,
			EndDate:    end,
			Status:     enums.ContractStatus(req.Status),
			Notes:      req.Notes,
			CreatedBy:  actorID(r),
		}
		if input.CompanyID, err = parseOptionalUUID(req.CompanyID, "company_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if input.RigID, err = parseOptionalUUID(req.RigID, "rig_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if input.ValueUSD, err = parseOptionalDecimal(req.ValueUSD, "value_usd"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": id})
	}
}

// UpdateContract applies a partial update to a contract.
func UpdateContract(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateContractRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch := contracts.UpdateContractInput{Notes: req.Notes}
		if patch.CompanyID, err = parseOptionalUUID(req.CompanyID, "company_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if patch.RigID, err = parseOptionalUUID(req.RigID, "rig_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if patch.ValueUSD, err = parseOptionalDecimal(req.ValueUSD, "value_usd"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.StartDate != nil {
			start, err := parseDate(*req.StartDate, "start_date")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			patch.StartDate = &start
		}
		if req.EndDate != nil {
			end, err := parseDate(*req.EndDate, "end_date")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			patch.EndDate = &end
		}
		if req.Status != nil {
			status := enums.ContractStatus(*req.Status)
			patch.Status = &status
		}

		if err := svc.Update(r.Context(), id, patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// DeleteContract removes a contract.
func DeleteContract(svc contracts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseDate(raw, field string) (time.Time, error) {
	value, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field+", expected YYYY-MM-DD")
	}
	return value, nil
}
