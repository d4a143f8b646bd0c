package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/api/responses"
	"github.com/rigtrack/rigtrack-backend/api/validators"
	"github.com/rigtrack/rigtrack-backend/internal/assets"
	"github.com/rigtrack/rigtrack-backend/pkg/config"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
	"github.com/rigtrack/rigtrack-backend/pkg/pagination"
)

type createAssetRequest struct {
	AssetNo         string  `json:"asset_no" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Category        *string `json:"category"`
	SerialNumber    *string `json:"serial_number"`
	Status          string  `json:"status"`
	CompanyID       *string `json:"company_id"`
	RigID           *string `json:"rig_id"`
	ContractID      *string `json:"contract_id"`
	Location        *string `json:"location"`
	ValueUSD        *string `json:"value_usd"`
	AcquisitionDate *string `json:"acquisition_date"`
	Notes           *string `json:"notes"`
}

type updateAssetRequest struct {
	Name            *string `json:"name"`
	Category        *string `json:"category"`
	SerialNumber    *string `json:"serial_number"`
	Status          *string `json:"status"`
	CompanyID       *string `json:"company_id"`
	RigID           *string `json:"rig_id"`
	ContractID      *string `json:"contract_id"`
	Location        *string `json:"location"`
	ValueUSD        *string `json:"value_usd"`
	AcquisitionDate *string `json:"acquisition_date"`
	Notes           *string `json:"notes"`
}

// ListAssets searches the catalog with filters, sorting and pagination.
func ListAssets(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		query := r.URL.Query()
		opts := assets.ListOptions{
			Search:   strings.TrimSpace(query.Get("search")),
			Status:   strings.TrimSpace(query.Get("status")),
			Category: strings.TrimSpace(query.Get("category")),
			Sort:     strings.TrimSpace(query.Get("sort")),
			Order:    strings.ToLower(strings.TrimSpace(query.Get("order"))),
		}

		companyID, err := validators.ParseQueryUUID(r, "company_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts.CompanyID = companyID

		rigID, err := validators.ParseQueryUUID(r, "rig_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opts.RigID = rigID

		if opts.Page, err = validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<30); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if opts.Limit, err = validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), opts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetAsset returns one asset with its recent history.
func GetAsset(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// CreateAsset registers a new asset.
func CreateAsset(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		var req createAssetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := createAssetInput(req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.CreatedBy = actorID(r)

		id, err := svc.Create(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"id": id})
	}
}

// UpdateAsset applies a partial update and reports the changed fields.
func UpdateAsset(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateAssetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Update(r.Context(), id, assets.UpdateAssetInput{
			Name:            req.Name,
			Category:        req.Category,
			SerialNumber:    req.SerialNumber,
			Status:          req.Status,
			CompanyID:       req.CompanyID,
			RigID:           req.RigID,
			ContractID:      req.ContractID,
			Location:        req.Location,
			ValueUSD:        req.ValueUSD,
			AcquisitionDate: req.AcquisitionDate,
			Notes:           req.Notes,
		}, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeleteAsset removes an asset and its component tree.
func DeleteAsset(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
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

// AssetsSummary returns catalog-wide aggregates.
func AssetsSummary(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ExportAssets streams the catalog as an Excel workbook.
func ExportAssets(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		payload, err := svc.ExportExcel(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("assets_%s.xlsx", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}
}

// ImportAssets ingests an uploaded Excel workbook.
func ImportAssets(svc assets.Service, cfg config.ImportConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assets service unavailable"))
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid upload"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required"))
			return
		}
		defer file.Close()

		result, err := svc.ImportExcel(r.Context(), file, actorID(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func createAssetInput(req createAssetRequest) (*assets.CreateAssetInput, error) {
	input := &assets.CreateAssetInput{
		AssetNo:      strings.TrimSpace(req.AssetNo),
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		SerialNumber: req.SerialNumber,
		Status:       enums.AssetStatus(req.Status),
		Location:     req.Location,
		Notes:        req.Notes,
	}

	var err error
	if input.CompanyID, err = parseOptionalUUID(req.CompanyID, "company_id"); err != nil {
		return nil, err
	}
	if input.RigID, err = parseOptionalUUID(req.RigID, "rig_id"); err != nil {
		return nil, err
	}
	if input.ContractID, err = parseOptionalUUID(req.ContractID, "contract_id"); err != nil {
		return nil, err
	}

	if req.ValueUSD != nil && *req.ValueUSD != "" {
		value, err := decimal.NewFromString(*req.ValueUSD)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid asset value")
		}
		input.ValueUSD = &value
	}
	if req.AcquisitionDate != nil && *req.AcquisitionDate != "" {
		date, err := time.Parse("2006-01-02", *req.AcquisitionDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid acquisition date, expected YYYY-MM-DD")
		}
		input.AcquisitionDate = &date
	}
	return input, nil
}
