package demand

// PivotMatrix is the dense school×product table consumed by the spreadsheet
// writer: a header row, a units row, then one row per school. Every cell is
// present; a (school, product) pair absent from the input renders as 0,
// never as a missing value.
type PivotMatrix struct {
	Header []string   `json:"header"`
	Units  []string   `json:"units"`
	Rows   []PivotRow `json:"rows"`
}

type PivotRow struct {
	School string    `json:"school"`
	Cells  []float64 `json:"cells"`
}

// ToPivot reshapes the school×product totals into the dense matrix. Both
// axes arrive already sorted alphabetically by name, which fixes the output
// ordering. Cells are rounded to 2 decimals after the summation that built
// the totals, so a cell can differ in its last digit from the 3-decimal
// rollup view.
func ToPivot(totals map[SchoolProductKey]float64, products []ProductRef, schools []SchoolRef) *PivotMatrix {
	header := make([]string, 0, len(products)+1)
	units := make([]string, 0, len(products)+1)
	header = append(header, "School")
	units = append(units, "Unit")
	for _, p := range products {
		header = append(header, p.Name)
		units = append(units, p.Unit)
	}

	rows := make([]PivotRow, 0, len(schools))
	for _, s := range schools {
		cells := make([]float64, len(products))
		for i, p := range products {
			cells[i] = Round2(totals[SchoolProductKey{SchoolID: s.ID, ProductID: p.ID}])
		}
		rows = append(rows, PivotRow{School: s.Name, Cells: cells})
	}

	return &PivotMatrix{Header: header, Units: units, Rows: rows}
}
