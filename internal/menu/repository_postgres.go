package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetMenu(ctx context.Context, menuID int) (*Menu, error) {
	var m Menu
	err := r.db.QueryRow(ctx, `
		SELECT id, name
		FROM menus
		WHERE id = $1
	`, menuID).Scan(&m.ID, &m.Name)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *PostgresRepository) ListMeals(ctx context.Context, menuID int) ([]MealRow, error) {
	pgRows, err := r.db.Query(ctx, `
		SELECT ml.id, ml.name, mm.modality_id, mm.monthly_frequency
		FROM menu_meals mm
		JOIN meals ml ON ml.id = mm.meal_id AND ml.active
		WHERE mm.menu_id = $1
		ORDER BY ml.name, mm.modality_id
	`, menuID)
	if err != nil {
		return nil, err
	}
	defer pgRows.Close()

	var meals []MealRow
	for pgRows.Next() {
		var m MealRow
		if err := pgRows.Scan(&m.MealID, &m.MealName, &m.ModalityID, &m.MonthlyFrequency); err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}

	return meals, pgRows.Err()
}

func (r *PostgresRepository) ListRecipe(ctx context.Context, mealID int) ([]RecipeRow, error) {
	pgRows, err := r.db.Query(ctx, `
		SELECT
			p.id, p.name, p.unit_of_measure,
			mp.per_capita_quantity,
			mp.measurement_type,
			p.division_factor,
			p.reference_price
		FROM meal_products mp
		JOIN products p ON p.id = mp.product_id
		WHERE mp.meal_id = $1
		ORDER BY p.name
	`, mealID)
	if err != nil {
		return nil, err
	}
	defer pgRows.Close()

	var recipe []RecipeRow
	for pgRows.Next() {
		var row RecipeRow
		if err := pgRows.Scan(
			&row.ProductID, &row.ProductName, &row.UnitOfMeasure,
			&row.PerCapitaQuantity,
			&row.MeasurementType,
			&row.DivisionFactor,
			&row.ReferencePrice,
		); err != nil {
			return nil, err
		}
		recipe = append(recipe, row)
	}

	return recipe, pgRows.Err()
}

func (r *PostgresRepository) EnrolledForModality(ctx context.Context, modalityID int) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(sm.enrolled_students), 0)
		FROM school_modalities sm
		JOIN schools s ON s.id = sm.school_id AND s.active
		WHERE sm.modality_id = $1
	`, modalityID).Scan(&total)

	return total, err
}
