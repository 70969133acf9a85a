package menu

import (
	"context"
	"log/slog"
	"time"

	"github.com/ewesolon/gestaoescolar-sub002/internal/demand"
)

// Service computes menu costing: instead of summing quantities by product
// across the whole scope, it prices one modality's enrollment through each
// meal of a menu. Prices come from the same resolver the demand engine uses,
// evaluated at today's date.
type Service struct {
	repo    Repository
	gateway demand.Gateway
	log     *slog.Logger
}

func NewService(repo Repository, gateway demand.Gateway, log *slog.Logger) *Service {
	return &Service{repo: repo, gateway: gateway, log: log}
}

// MealCosts costs every meal of the menu.
//
// Per meal: unit_cost_per_student sums, over the recipe, the per-student
// quantity (enrolled=1, frequency=1) times the resolved unit price; the meal
// total multiplies that by the modality's enrollment and the meal's monthly
// frequency. A meal with no recipe contributes 0 and never aborts the rest.
func (s *Service) MealCosts(ctx context.Context, menuID int) (*MenuCost, error) {
	m, err := s.repo.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}

	meals, err := s.repo.ListMeals(ctx, menuID)
	if err != nil {
		return nil, err
	}

	resolver := demand.NewPriceResolver(s.gateway, time.Now())
	enrollment := make(map[int]int)

	result := &MenuCost{
		MenuID:   m.ID,
		MenuName: m.Name,
		Meals:    make([]MealCost, 0, len(meals)),
	}

	for _, meal := range meals {
		recipe, err := s.repo.ListRecipe(ctx, meal.MealID)
		if err != nil {
			return nil, err
		}

		var unitCost float64
		products := make([]ProductCost, 0, len(recipe))

		for _, row := range recipe {
			perStudentQty := demand.MonthlyQuantity(
				1, 1,
				demand.NumberOr(row.PerCapitaQuantity, 0),
				row.MeasurementType,
				demand.NumberOr(row.DivisionFactor, 1),
			)

			unitPrice, err := resolver.Resolve(ctx, row.ProductID, row.ReferencePrice)
			if err != nil {
				return nil, err
			}

			costPerStudent := perStudentQty * unitPrice
			unitCost += costPerStudent

			products = append(products, ProductCost{
				ProductID:          row.ProductID,
				ProductName:        row.ProductName,
				UnitOfMeasure:      row.UnitOfMeasure,
				PerStudentQuantity: demand.Round3(perStudentQty),
				UnitPrice:          demand.Round2(unitPrice),
				CostPerStudent:     demand.Round2(costPerStudent),
			})
		}

		enrolled, ok := enrollment[meal.ModalityID]
		if !ok {
			enrolled, err = s.repo.EnrolledForModality(ctx, meal.ModalityID)
			if err != nil {
				return nil, err
			}
			enrollment[meal.ModalityID] = enrolled
		}

		costTotal := unitCost * float64(enrolled) * float64(meal.MonthlyFrequency)
		result.MenuTotalCost += costTotal

		result.Meals = append(result.Meals, MealCost{
			MealID:             meal.MealID,
			MealName:           meal.MealName,
			ModalityID:         meal.ModalityID,
			MonthlyFrequency:   meal.MonthlyFrequency,
			EnrolledStudents:   enrolled,
			UnitCostPerStudent: demand.Round2(unitCost),
			CostTotal:          demand.Round2(costTotal),
			Products:           products,
		})
	}

	result.MenuTotalCost = demand.Round2(result.MenuTotalCost)

	s.log.Debug("menu costed", "menu_id", menuID, "meals", len(result.Meals))
	return result, nil
}
