package menu

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/ewesolon/gestaoescolar-sub002/internal/demand"
)

// --------------------------------------------------
// Mock Repository + Gateway
// --------------------------------------------------

type MockRepository struct {
	menus      map[int]*Menu
	meals      map[int][]MealRow
	recipes    map[int][]RecipeRow
	enrollment map[int]int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		menus:      make(map[int]*Menu),
		meals:      make(map[int][]MealRow),
		recipes:    make(map[int][]RecipeRow),
		enrollment: make(map[int]int),
	}
}

func (m *MockRepository) GetMenu(ctx context.Context, menuID int) (*Menu, error) {
	menu, ok := m.menus[menuID]
	if !ok {
		return nil, ErrMenuNotFound
	}
	return menu, nil
}

func (m *MockRepository) ListMeals(ctx context.Context, menuID int) ([]MealRow, error) {
	return m.meals[menuID], nil
}

func (m *MockRepository) ListRecipe(ctx context.Context, mealID int) ([]RecipeRow, error) {
	return m.recipes[mealID], nil
}

func (m *MockRepository) EnrolledForModality(ctx context.Context, modalityID int) (int, error) {
	return m.enrollment[modalityID], nil
}

type MockGateway struct {
	contractPrices map[int][]float64
}

func (m *MockGateway) CandidateRows(ctx context.Context, f demand.Filter, evaluationDate time.Time) ([]demand.CandidateRow, error) {
	return nil, nil
}

func (m *MockGateway) ActiveContractPrices(ctx context.Context, productID int, evaluationDate time.Time) ([]float64, error) {
	return m.contractPrices[productID], nil
}

func floatPtr(v float64) *float64 { return &v }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestMealCosts_Breakdown(t *testing.T) {
	repo := NewMockRepository()
	repo.menus[1] = &Menu{ID: 1, Name: "Winter Menu"}
	repo.meals[1] = []MealRow{
		{MealID: 10, MealName: "Lunch", ModalityID: 1, MonthlyFrequency: 20},
	}
	// 80g of rice per student per serving at 4.50/kg
	repo.recipes[10] = []RecipeRow{
		{
			ProductID:         1,
			ProductName:       "Rice",
			UnitOfMeasure:     "kg",
			PerCapitaQuantity: floatPtr(80),
			MeasurementType:   demand.MeasurementGrams,
			DivisionFactor:    floatPtr(1),
			ReferencePrice:    floatPtr(5.0),
		},
	}
	repo.enrollment[1] = 200

	gateway := &MockGateway{contractPrices: map[int][]float64{1: {4.5}}}
	service := NewService(repo, gateway, testLogger())

	result, err := service.MealCosts(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(result.Meals))
	}

	lunch := result.Meals[0]
	// 0.08 kg × 4.50 = 0.36 per student per serving
	if math.Abs(lunch.UnitCostPerStudent-0.36) > 1e-9 {
		t.Fatalf("expected unit cost 0.36, got %v", lunch.UnitCostPerStudent)
	}
	// 0.36 × 200 students × 20 servings = 1440.00
	if lunch.CostTotal != 1440.00 {
		t.Fatalf("expected meal cost 1440.00, got %v", lunch.CostTotal)
	}
	if result.MenuTotalCost != 1440.00 {
		t.Fatalf("expected menu total 1440.00, got %v", result.MenuTotalCost)
	}

	if len(lunch.Products) != 1 {
		t.Fatalf("expected 1 product in breakdown, got %d", len(lunch.Products))
	}
	rice := lunch.Products[0]
	if rice.UnitPrice != 4.5 {
		t.Fatalf("expected contract price 4.50 over reference 5.00, got %v", rice.UnitPrice)
	}
	if math.Abs(rice.CostPerStudent-0.36) > 1e-9 {
		t.Fatalf("expected cost per student 0.36, got %v", rice.CostPerStudent)
	}
}

func TestMealCosts_EmptyRecipeContributesZero(t *testing.T) {
	repo := NewMockRepository()
	repo.menus[1] = &Menu{ID: 1, Name: "Winter Menu"}
	repo.meals[1] = []MealRow{
		{MealID: 10, MealName: "Breakfast", ModalityID: 1, MonthlyFrequency: 20},
		{MealID: 11, MealName: "Lunch", ModalityID: 1, MonthlyFrequency: 10},
	}
	// Breakfast has no recipe rows; lunch has one product at reference price.
	repo.recipes[11] = []RecipeRow{
		{
			ProductID:         2,
			ProductName:       "Bread",
			UnitOfMeasure:     "un",
			PerCapitaQuantity: floatPtr(1),
			MeasurementType:   demand.MeasurementUnits,
			DivisionFactor:    floatPtr(1),
			ReferencePrice:    floatPtr(0.5),
		},
	}
	repo.enrollment[1] = 100

	service := NewService(repo, &MockGateway{contractPrices: map[int][]float64{}}, testLogger())

	result, err := service.MealCosts(context.Background(), 1)
	if err != nil {
		t.Fatalf("a meal without recipe must not abort the run, got %v", err)
	}

	if len(result.Meals) != 2 {
		t.Fatalf("expected both meals in output, got %d", len(result.Meals))
	}
	if result.Meals[0].CostTotal != 0 {
		t.Fatalf("expected zero cost for recipe-less meal, got %v", result.Meals[0].CostTotal)
	}
	// 1 un × 0.50 × 100 students × 10 = 500.00
	if result.Meals[1].CostTotal != 500.00 {
		t.Fatalf("expected 500.00 for lunch, got %v", result.Meals[1].CostTotal)
	}
	if result.MenuTotalCost != 500.00 {
		t.Fatalf("expected menu total 500.00, got %v", result.MenuTotalCost)
	}
}

func TestMealCosts_MenuNotFound(t *testing.T) {
	service := NewService(NewMockRepository(), &MockGateway{}, testLogger())

	if _, err := service.MealCosts(context.Background(), 99); err != ErrMenuNotFound {
		t.Fatalf("expected ErrMenuNotFound, got %v", err)
	}
}
