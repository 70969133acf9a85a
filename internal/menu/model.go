package menu

// Menu is the header row of a costed menu.
type Menu struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MealRow is one (meal, modality) occurrence inside a menu.
type MealRow struct {
	MealID           int
	MealName         string
	ModalityID       int
	MonthlyFrequency int
}

// RecipeRow is one product of a meal's recipe with everything pricing needs.
type RecipeRow struct {
	ProductID         int
	ProductName       string
	UnitOfMeasure     string
	PerCapitaQuantity *float64
	MeasurementType   string
	DivisionFactor    *float64
	ReferencePrice    *float64
}

// ProductCost is one product's contribution to a meal's per-student cost,
// kept for the breakdown display.
type ProductCost struct {
	ProductID          int     `json:"product_id"`
	ProductName        string  `json:"product_name"`
	UnitOfMeasure      string  `json:"unit_of_measure"`
	PerStudentQuantity float64 `json:"per_student_quantity"`
	UnitPrice          float64 `json:"unit_price"`
	CostPerStudent     float64 `json:"cost_per_student"`
}

// MealCost is the costed view of one meal within the menu.
type MealCost struct {
	MealID             int           `json:"meal_id"`
	MealName           string        `json:"meal_name"`
	ModalityID         int           `json:"modality_id"`
	MonthlyFrequency   int           `json:"monthly_frequency"`
	EnrolledStudents   int           `json:"enrolled_students"`
	UnitCostPerStudent float64       `json:"unit_cost_per_student"`
	CostTotal          float64       `json:"cost_total"`
	Products           []ProductCost `json:"products"`
}

// MenuCost is the response of the meal-costs endpoint.
type MenuCost struct {
	MenuID        int        `json:"menu_id"`
	MenuName      string     `json:"menu_name"`
	Meals         []MealCost `json:"meals"`
	MenuTotalCost float64    `json:"menu_total_cost"`
}
