package bom

import (
	"context"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

const exportSheet = "BOM"

var exportHeaders = []string{
	"Asset No", "Asset Name", "Component Name", "Part Number", "Type",
	"Serial Number", "Manufacturer", "Quantity", "UOM", "Unit Cost (USD)",
	"Total Cost (USD)", "Lead Time (days)", "Status", "Notes",
}

var exportWidths = []float64{10, 25, 35, 16, 12, 18, 20, 10, 6, 14, 14, 14, 12, 30}

// ExportExcel renders the filtered cross-asset component listing as a
// spreadsheet, one row per component with its extended cost.
func (s *service) ExportExcel(ctx context.Context, filter FlatFilter) ([]byte, error) {
	rows, err := s.repo.ListFlat(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bom items for export")
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
		totalCost := row.UnitCostUSD.Mul(row.Quantity)
		values := []any{
			row.AssetNo,
			row.AssetName,
			row.Name,
			deref(row.PartNo),
			string(row.ItemType),
			deref(row.SerialNumber),
			deref(row.Manufacturer),
			row.Quantity.InexactFloat64(),
			row.UOM,
			row.UnitCostUSD.InexactFloat64(),
			totalCost.InexactFloat64(),
			row.LeadTimeDays,
			string(row.Status),
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

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
