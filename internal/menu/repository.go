package menu

import (
	"context"
	"errors"
)

var ErrMenuNotFound = errors.New("menu not found")

// Repository reads the menu-costing inputs. Like the demand gateway it is
// read-only; the dashboard CRUD owns all writes.
type Repository interface {

	// GetMenu returns the menu header, or ErrMenuNotFound.
	GetMenu(ctx context.Context, menuID int) (*Menu, error)

	// ListMeals returns the menu's (meal, modality) rows with their monthly
	// frequencies.
	ListMeals(ctx context.Context, menuID int) ([]MealRow, error)

	// ListRecipe returns a meal's recipe products. A meal with no recipe
	// rows is valid and costs zero.
	ListRecipe(ctx context.Context, mealID int) ([]RecipeRow, error)

	// EnrolledForModality sums enrolled_students across every school mapped
	// to the modality.
	EnrolledForModality(ctx context.Context, modalityID int) (int, error)
}
