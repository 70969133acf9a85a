package demand

// NumberOr coerces a nullable numeric column to a caller-supplied default.
// Quantities and frequencies default to 0, division factors to 1; NaN never
// enters the formulas below.
func NumberOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// MonthlyQuantity converts one candidate row's inputs into the monthly
// purchase quantity.
//
// Recipes are authored in grams per serving but purchased in kilograms, so
// the grams path divides by 1000. Unit-measured products (bread, boxes) skip
// that step. The division factor normalizes pack sizing, e.g. items sold in
// bundles of 6.
//
// Zero enrollment or zero frequency yields zero. Negative inputs are not
// rejected here; upstream data entry owns that.
func MonthlyQuantity(enrolledStudents, monthlyFrequency int, perCapitaQuantity float64, measurementType string, divisionFactor float64) float64 {
	if divisionFactor == 0 {
		divisionFactor = 1
	}

	base := float64(enrolledStudents) * float64(monthlyFrequency) * perCapitaQuantity

	if measurementType == MeasurementUnits {
		return base / divisionFactor
	}
	return base / 1000 / divisionFactor
}
