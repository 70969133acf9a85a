package demand

// Measurement types accepted on meal_products rows. Grams is the authoring
// default: recipe quantities are written in grams per serving and purchased
// in kilograms. Countable products (bread units, boxes) use units and skip
// the gram→kg conversion.
const (
	MeasurementGrams = "grams"
	MeasurementUnits = "units"
)

// Filter is the typed filter object handed to the Gateway. Empty slices mean
// "no restriction". The engine never builds query text itself; translating
// this into parameterized SQL is the Gateway's job alone.
type Filter struct {
	SchoolIDs   []int
	ModalityIDs []int
	MenuIDs     []int
}

// CandidateRow is one school×modality×menu×meal×product combination inside
// the requested scope, as returned by the Gateway bulk read. Nullable
// columns arrive as pointers and are coerced by the quantity calculator.
type CandidateRow struct {
	SchoolID          int
	SchoolName        string
	ModalityID        int
	ModalityName      string
	MenuID            int
	MenuName          string
	MealID            int
	MealName          string
	ProductID         int
	ProductName       string
	UnitOfMeasure     string
	EnrolledStudents  int
	MonthlyFrequency  int
	PerCapitaQuantity *float64
	MeasurementType   string
	DivisionFactor    *float64
	ReferencePrice    *float64
}

// DemandLine is the fully resolved tuple kept on each aggregate for
// drill-down in the dashboard. Lines are never persisted; they live only in
// the response of the run that produced them.
type DemandLine struct {
	SchoolID          int     `json:"school_id"`
	SchoolName        string  `json:"school_name"`
	ModalityID        int     `json:"modality_id"`
	ModalityName      string  `json:"modality_name"`
	MenuID            int     `json:"menu_id"`
	MenuName          string  `json:"menu_name"`
	MealID            int     `json:"meal_id"`
	MealName          string  `json:"meal_name"`
	ProductID         int     `json:"product_id"`
	EnrolledStudents  int     `json:"enrolled_students"`
	MonthlyFrequency  int     `json:"monthly_frequency"`
	PerCapitaQuantity float64 `json:"per_capita_quantity"`
	MeasurementType   string  `json:"measurement_type"`
	DivisionFactor    float64 `json:"division_factor"`
	ResolvedUnitPrice float64 `json:"resolved_unit_price"`
	ComputedQuantity  float64 `json:"computed_quantity"`
}

// DemandAggregate is the per-product rollup. QuantityTotal is always the sum
// of the detail lines' computed quantities; ValueTotal is that sum priced at
// the product's resolved unit price.
type DemandAggregate struct {
	ProductID     int          `json:"product_id"`
	ProductName   string       `json:"product_name"`
	UnitOfMeasure string       `json:"unit_of_measure"`
	UnitPrice     float64      `json:"unit_price"`
	QuantityTotal float64      `json:"quantity_total"`
	ValueTotal    float64      `json:"value_total"`
	Detail        []DemandLine `json:"detail"`
}

// Summary mirrors the dashboard's "resumo" card. TotalCardapios is only set
// by the multi-menu endpoint.
type Summary struct {
	TotalProdutos  int     `json:"total_produtos"`
	TotalValor     float64 `json:"total_valor"`
	TotalCardapios int     `json:"total_cardapios,omitempty"`
}

// Result is the JSON payload of the generate endpoints.
type Result struct {
	Demanda []DemandAggregate `json:"demanda"`
	Resumo  Summary           `json:"resumo"`
}

// SchoolProductKey keys the secondary reduction feeding the pivot export.
type SchoolProductKey struct {
	SchoolID  int
	ProductID int
}

// SchoolRef and ProductRef are the distinct axes of the pivot matrix.
type SchoolRef struct {
	ID   int
	Name string
}

type ProductRef struct {
	ID   int
	Name string
	Unit string
}
