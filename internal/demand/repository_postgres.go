package demand

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresGateway struct {
	db *pgxpool.Pool
}

func NewPostgresGateway(db *pgxpool.Pool) *PostgresGateway {
	return &PostgresGateway{db: db}
}

// --------------------------------------------------
// CANDIDATE ROWSET (one bulk read per run)
// --------------------------------------------------
//
// The filter is appended as `= ANY($n)` placeholders only; no value ever
// reaches the query text.
func (g *PostgresGateway) CandidateRows(ctx context.Context, f Filter, evaluationDate time.Time) ([]CandidateRow, error) {
	query := `
		SELECT
			s.id, s.name,
			mo.id, mo.name,
			me.id, me.name,
			ml.id, ml.name,
			p.id, p.name, p.unit_of_measure,
			sm.enrolled_students,
			mm.monthly_frequency,
			mp.per_capita_quantity,
			mp.measurement_type,
			p.division_factor,
			p.reference_price
		FROM schools s
		JOIN school_modalities sm ON sm.school_id = s.id
		JOIN modalities mo        ON mo.id = sm.modality_id
		JOIN menus me             ON me.active
		                         AND (me.modality_id IS NULL OR me.modality_id = mo.id)
		                         AND (me.start_date IS NULL OR me.start_date <= $1)
		                         AND (me.end_date IS NULL OR me.end_date >= $1)
		JOIN menu_meals mm        ON mm.menu_id = me.id AND mm.modality_id = mo.id
		JOIN meals ml             ON ml.id = mm.meal_id AND ml.active
		JOIN meal_products mp     ON mp.meal_id = ml.id
		JOIN products p           ON p.id = mp.product_id
		WHERE s.active
	`
	args := []interface{}{evaluationDate}

	if len(f.SchoolIDs) > 0 {
		args = append(args, int4(f.SchoolIDs))
		query += fmt.Sprintf(" AND s.id = ANY($%d)", len(args))
	}
	if len(f.ModalityIDs) > 0 {
		args = append(args, int4(f.ModalityIDs))
		query += fmt.Sprintf(" AND mo.id = ANY($%d)", len(args))
	}
	if len(f.MenuIDs) > 0 {
		args = append(args, int4(f.MenuIDs))
		query += fmt.Sprintf(" AND me.id = ANY($%d)", len(args))
	}

	query += " ORDER BY s.name, p.name, ml.name, me.id"

	pgRows, err := g.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer pgRows.Close()

	var rows []CandidateRow
	for pgRows.Next() {
		var r CandidateRow
		if err := pgRows.Scan(
			&r.SchoolID, &r.SchoolName,
			&r.ModalityID, &r.ModalityName,
			&r.MenuID, &r.MenuName,
			&r.MealID, &r.MealName,
			&r.ProductID, &r.ProductName, &r.UnitOfMeasure,
			&r.EnrolledStudents,
			&r.MonthlyFrequency,
			&r.PerCapitaQuantity,
			&r.MeasurementType,
			&r.DivisionFactor,
			&r.ReferencePrice,
		); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}

	return rows, pgRows.Err()
}

// --------------------------------------------------
// ACTIVE CONTRACT PRICES (per product, memoized upstream)
// --------------------------------------------------
func (g *PostgresGateway) ActiveContractPrices(ctx context.Context, productID int, evaluationDate time.Time) ([]float64, error) {
	pgRows, err := g.db.Query(ctx, `
		SELECT cp.price
		FROM contract_products cp
		JOIN contracts c ON c.id = cp.contract_id
		WHERE cp.product_id = $1
		  AND c.active
		  AND c.start_date <= $2
		  AND c.end_date >= $2
	`, productID, evaluationDate)
	if err != nil {
		return nil, err
	}
	defer pgRows.Close()

	var prices []float64
	for pgRows.Next() {
		var price float64
		if err := pgRows.Scan(&price); err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}

	return prices, pgRows.Err()
}

func int4(ids []int) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}
