package demand

import (
	"math"
	"testing"
)

func TestMonthlyQuantity_Grams(t *testing.T) {
	// 200 students × 20 meals × 80g ÷ 1000 = 320 kg
	got := MonthlyQuantity(200, 20, 80, MeasurementGrams, 1)
	if got != 320.0 {
		t.Fatalf("expected 320.0 kg, got %v", got)
	}
}

func TestMonthlyQuantity_Units(t *testing.T) {
	// 50 students × 4 × 1 unit ÷ bundle of 6
	got := MonthlyQuantity(50, 4, 1, MeasurementUnits, 6)
	want := 200.0 / 6.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMonthlyQuantity_GramsIsDefault(t *testing.T) {
	got := MonthlyQuantity(100, 10, 50, "", 1)
	if got != 50.0 {
		t.Fatalf("expected grams conversion for unknown measurement type, got %v", got)
	}
}

func TestMonthlyQuantity_ZeroEnrollmentOrFrequency(t *testing.T) {
	if got := MonthlyQuantity(0, 20, 80, MeasurementGrams, 1); got != 0 {
		t.Fatalf("expected 0 for zero enrollment, got %v", got)
	}
	if got := MonthlyQuantity(200, 0, 80, MeasurementGrams, 1); got != 0 {
		t.Fatalf("expected 0 for zero frequency, got %v", got)
	}
}

func TestMonthlyQuantity_ZeroDivisionFactorNeverNaN(t *testing.T) {
	got := MonthlyQuantity(200, 20, 80, MeasurementGrams, 0)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected a finite quantity, got %v", got)
	}
	if got != 320.0 {
		t.Fatalf("expected division factor 0 to behave as 1, got %v", got)
	}
}

func TestNumberOr(t *testing.T) {
	if got := NumberOr(nil, 1); got != 1 {
		t.Fatalf("expected default 1 for nil, got %v", got)
	}

	v := 2.5
	if got := NumberOr(&v, 0); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
}
