package assets

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

const exportSheet = "Assets"

var exportHeaders = []string{
	"Asset No", "Name", "Category", "Serial Number", "Status", "Company",
	"Rig", "Contract No", "Location", "Value (USD)", "Acquisition Date", "Notes",
}

var exportWidths = []float64{12, 30, 22, 18, 14, 28, 20, 16, 22, 14, 18, 30}

// ExportExcel renders the full catalog as a spreadsheet, ordered by asset
// number.
func (s *service) ExportExcel(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assets for export")
	}

	book := excelize.NewFile()
	defer book.Close()

	sheet, err := book.NewSheet(exportSheet)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create export sheet")
	}
	book.SetActiveSheet(sheet)
	book.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := book.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export header")
		}
		column, _ := excelize.ColumnNumberToName(i + 1)
		_ = book.SetColWidth(exportSheet, column, column, exportWidths[i])
	}

	for i, row := range rows {
		values := []any{
			row.AssetNo,
			row.Name,
			deref(row.Category),
			deref(row.SerialNumber),
			string(row.Status),
			deref(row.CompanyName),
			deref(row.RigName),
			deref(row.ContractNo),
			deref(row.Location),
			row.ValueUSD.InexactFloat64(),
			formatDate(row.AcquisitionDate),
			deref(row.Notes),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := book.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write export row")
			}
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize export")
	}
	return buf.Bytes(), nil
}

// ImportExcel reads the first sheet of an uploaded workbook and upserts
// assets by asset number. Rows missing the asset number or name are
// skipped; per-row store failures are collected rather than aborting the
// whole import.
func (s *service) ImportExcel(ctx context.Context, file io.Reader, createdBy *uuid.UUID) (*ImportResult, error) {
	book, err := excelize.OpenReader(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read workbook")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read sheet rows")
	}
	if len(rows) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}

	headers := map[string]int{}
	for i, name := range rows[0] {
		headers[strings.TrimSpace(strings.ToLower(name))] = i
	}

	result := &ImportResult{Errors: []string{}}
	for i, cells := range rows[1:] {
		assetNo := cellValue(cells, headers, "asset no", "asset_no")
		name := cellValue(cells, headers, "name")
		if assetNo == "" || name == "" {
			result.Skipped++
			continue
		}

		row := ImportRow{
			AssetNo:      assetNo,
			Name:         name,
			Category:     optional(cellValue(cells, headers, "category")),
			SerialNumber: optional(cellValue(cells, headers, "serial number")),
			Status:       string(enums.AssetStatusInactive),
			Location:     optional(cellValue(cells, headers, "location")),
			ValueUSD:     decimal.Zero,
			Notes:        optional(cellValue(cells, headers, "notes")),
		}
		if status := cellValue(cells, headers, "status"); status != "" {
			row.Status = status
		}
		if raw := cellValue(cells, headers, "value (usd)"); raw != "" {
			if parsed, err := decimal.NewFromString(raw); err == nil {
				row.ValueUSD = parsed
			}
		}
		if raw := cellValue(cells, headers, "acquisition date"); raw != "" {
			if parsed, err := time.Parse(dateLayout, raw); err == nil {
				row.AcquisitionDate = &parsed
			}
		}

		if err := s.repo.UpsertImport(ctx, row, createdBy); err != nil {
			// Spreadsheet rows are 1-based and the header occupies row 1.
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+2, err))
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

func cellValue(cells []string, headers map[string]int, names ...string) string {
	for _, name := range names {
		idx, ok := headers[name]
		if !ok || idx >= len(cells) {
			continue
		}
		if value := strings.TrimSpace(cells[idx]); value != "" {
			return value
		}
	}
	return ""
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateLayout)
}
