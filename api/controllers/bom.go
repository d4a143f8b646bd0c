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
	"github.com/rigtrack/rigtrack-backend/internal/bom"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
)

type createBOMItemRequest struct {
	AssetID      string  `json:"asset_id" validate:"required"`
	ParentID     *string `json:"parent_id"`
	Name         string  `json:"name" validate:"required"`
	PartNo       *string `json:"part_no"`
	ItemType     string  `json:"item_type"`
	SerialNumber *string `json:"serial_number"`
	Manufacturer *string `json:"manufacturer"`
	Quantity     *string `json:"quantity"`
	UOM          string  `json:"uom"`
	UnitCostUSD  *string `json:"unit_cost_usd"`
	LeadTimeDays *int    `json:"lead_time_days"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
}

type updateBOMItemRequest struct {
	Name         *string `json:"name"`
	PartNo       *string `json:"part_no"`
	ItemType     *string `json:"item_type"`
	SerialNumber *string `json:"serial_number"`
	Manufacturer *string `json:"manufacturer"`
	Quantity     *string `json:"quantity"`
	UOM          *string `json:"uom"`
	UnitCostUSD  *string `json:"unit_cost_usd"`
	LeadTimeDays *int    `json:"lead_time_days"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	ParentID     *string `json:"parent_id"`
}

// GetBOMTree returns the depth-first ordered component tree for an asset.
func GetBOMTree(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		assetID, err := validators.PathUUID(chi.URLParam(r, "assetId"), "assetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tree, err := svc.Tree(r.Context(), assetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tree)
	}
}

// GetBOMSummary returns the aggregate counts and cost for an asset's tree.
func GetBOMSummary(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		assetID, err := validators.PathUUID(chi.URLParam(r, "assetId"), "assetId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summarize(r.Context(), assetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ListBOMItems returns the filtered cross-asset component listing.
func ListBOMItems(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		rows, err := svc.List(r.Context(), bomFilter(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// GetBOMItem returns one component with its asset identity.
func GetBOMItem(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// CreateBOMItem registers a component under an asset.
func CreateBOMItem(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		var req createBOMItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := createBOMItemInput(req)
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

// UpdateBOMItem applies a partial update to a component.
func UpdateBOMItem(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateBOMItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		patch, err := updateBOMItemPatch(req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Update(r.Context(), id, *patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// DeleteBOMItem removes a component and its descendants, reporting the
// number of rows removed.
func DeleteBOMItem(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		id, err := validators.PathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": deleted})
	}
}

// ExportBOM streams the filtered component listing as an Excel workbook.
func ExportBOM(svc bom.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bom service unavailable"))
			return
		}

		payload, err := svc.ExportExcel(r.Context(), bomFilter(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("bom_%s.xlsx", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
	}
}

func bomFilter(r *http.Request) bom.FlatFilter {
	query := r.URL.Query()
	return bom.FlatFilter{
		Search: strings.TrimSpace(query.Get("search")),
		Type:   strings.TrimSpace(query.Get("type")),
		Status: strings.TrimSpace(query.Get("status")),
	}
}

func createBOMItemInput(req createBOMItemRequest) (*bom.CreateItemInput, error) {
	assetID, err := validators.PathUUID(req.AssetID, "asset_id")
	if err != nil {
		return nil, err
	}

	input := &bom.CreateItemInput{
		AssetID:      assetID,
		Name:         strings.TrimSpace(req.Name),
		PartNo:       req.PartNo,
		ItemType:     enums.BOMItemType(req.ItemType),
		SerialNumber: req.SerialNumber,
		Manufacturer: req.Manufacturer,
		UOM:          strings.TrimSpace(req.UOM),
		LeadTimeDays: req.LeadTimeDays,
		Status:       enums.BOMItemStatus(req.Status),
		Notes:        req.Notes,
	}

	if input.ParentID, err = parseOptionalUUID(req.ParentID, "parent_id"); err != nil {
		return nil, err
	}
	if input.Quantity, err = parseOptionalDecimal(req.Quantity, "quantity"); err != nil {
		return nil, err
	}
	if input.UnitCostUSD, err = parseOptionalDecimal(req.UnitCostUSD, "unit_cost_usd"); err != nil {
		return nil, err
	}
	return input, nil
}

func updateBOMItemPatch(req updateBOMItemRequest) (*bom.UpdateItemInput, error) {
	patch := &bom.UpdateItemInput{
		Name:         req.Name,
		PartNo:       req.PartNo,
		SerialNumber: req.SerialNumber,
		Manufacturer: req.Manufacturer,
		UOM:          req.UOM,
		LeadTimeDays: req.LeadTimeDays,
		Notes:        req.Notes,
	}

	if req.ItemType != nil {
		itemType := enums.BOMItemType(*req.ItemType)
		patch.ItemType = &itemType
	}
	if req.Status != nil {
		status := enums.BOMItemStatus(*req.Status)
		patch.Status = &status
	}

	var err error
	if patch.Quantity, err = parseOptionalDecimal(req.Quantity, "quantity"); err != nil {
		return nil, err
	}
	if patch.UnitCostUSD, err = parseOptionalDecimal(req.UnitCostUSD, "unit_cost_usd"); err != nil {
		return nil, err
	}
	if patch.ParentID, err = parseOptionalUUID(req.ParentID, "parent_id"); err != nil {
		return nil, err
	}
	return patch, nil
}

func parseOptionalDecimal(raw *string, field string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	return &value, nil
}
