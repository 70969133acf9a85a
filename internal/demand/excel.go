package demand

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "General Summary"
	sheetBySchool = "By School"
)

// BuildWorkbook renders the two-sheet export. It receives fully resolved
// values and only formats them; quantities are written at 3 decimals on the
// summary sheet and the pivot cells arrive already rounded to 2.
func BuildWorkbook(agg *Aggregation, pivot *PivotMatrix) (*excelize.File, error) {
	wb := excelize.NewFile()

	if err := wb.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	if _, err := wb.NewSheet(sheetBySchool); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(wb, agg); err != nil {
		return nil, err
	}
	if err := writePivotSheet(wb, pivot); err != nil {
		return nil, err
	}

	return wb, nil
}

func writeSummarySheet(wb *excelize.File, agg *Aggregation) error {
	header := []interface{}{"Product", "Unit", "Quantity", "Unit Price", "Total Value"}
	if err := wb.SetSheetRow(sheetSummary, "A1", &header); err != nil {
		return err
	}

	for i, p := range agg.Products {
		row := []interface{}{
			p.ProductName,
			p.UnitOfMeasure,
			Round3(p.QuantityTotal),
			Round2(p.UnitPrice),
			Round2(p.ValueTotal),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

func writePivotSheet(wb *excelize.File, pivot *PivotMatrix) error {
	header := make([]interface{}, len(pivot.Header))
	for i, v := range pivot.Header {
		header[i] = v
	}
	if err := wb.SetSheetRow(sheetBySchool, "A1", &header); err != nil {
		return err
	}

	units := make([]interface{}, len(pivot.Units))
	for i, v := range pivot.Units {
		units[i] = v
	}
	if err := wb.SetSheetRow(sheetBySchool, "A2", &units); err != nil {
		return err
	}

	for i, row := range pivot.Rows {
		cells := make([]interface{}, 0, len(row.Cells)+1)
		cells = append(cells, row.School)
		for _, q := range row.Cells {
			cells = append(cells, q)
		}
		cell := fmt.Sprintf("A%d", i+3)
		if err := wb.SetSheetRow(sheetBySchool, cell, &cells); err != nil {
			return err
		}
	}

	return nil
}
