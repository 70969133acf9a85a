package demand

import "testing"

func TestToPivot_DenseMatrix(t *testing.T) {
	// School A never consumes product Y: its cell must be 0, not missing.
	totals := map[SchoolProductKey]float64{
		{SchoolID: 1, ProductID: 10}: 320,
		{SchoolID: 2, ProductID: 10}: 150,
		{SchoolID: 2, ProductID: 20}: 42.5,
	}
	products := []ProductRef{
		{ID: 10, Name: "X", Unit: "kg"},
		{ID: 20, Name: "Y", Unit: "un"},
	}
	schools := []SchoolRef{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}

	pivot := ToPivot(totals, products, schools)

	if len(pivot.Header) != 3 || pivot.Header[1] != "X" || pivot.Header[2] != "Y" {
		t.Fatalf("unexpected header %v", pivot.Header)
	}
	if len(pivot.Units) != 3 || pivot.Units[1] != "kg" || pivot.Units[2] != "un" {
		t.Fatalf("unexpected units row %v", pivot.Units)
	}
	if len(pivot.Rows) != 2 {
		t.Fatalf("expected 2 school rows, got %d", len(pivot.Rows))
	}

	rowA := pivot.Rows[0]
	if rowA.School != "A" || len(rowA.Cells) != 2 {
		t.Fatalf("unexpected first row %+v", rowA)
	}
	if rowA.Cells[1] != 0 {
		t.Fatalf("expected 0 for absent (A, Y) cell, got %v", rowA.Cells[1])
	}
	if rowA.Cells[0] != 320 {
		t.Fatalf("expected 320 for (A, X), got %v", rowA.Cells[0])
	}
}

func TestToPivot_RoundsCellsToTwoDecimals(t *testing.T) {
	totals := map[SchoolProductKey]float64{
		{SchoolID: 1, ProductID: 10}: 33.333333,
	}
	products := []ProductRef{{ID: 10, Name: "Bread", Unit: "un"}}
	schools := []SchoolRef{{ID: 1, Name: "A"}}

	pivot := ToPivot(totals, products, schools)

	if pivot.Rows[0].Cells[0] != 33.33 {
		t.Fatalf("expected 33.33, got %v", pivot.Rows[0].Cells[0])
	}
}

func TestToPivot_Empty(t *testing.T) {
	pivot := ToPivot(map[SchoolProductKey]float64{}, nil, nil)

	if len(pivot.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(pivot.Rows))
	}
	if len(pivot.Header) != 1 || len(pivot.Units) != 1 {
		t.Fatalf("expected label-only header/units, got %v / %v", pivot.Header, pivot.Units)
	}
}
