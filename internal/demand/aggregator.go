package demand

import (
	"context"
	"log/slog"
	"sort"
)

// Aggregation is the full output of one aggregation run: the per-product
// rollups (sorted by product name for deterministic responses), the
// school×product totals feeding the pivot export, the distinct axes of that
// pivot, and the count of distinct menus that contributed rows.
type Aggregation struct {
	Products      []DemandAggregate
	SchoolProduct map[SchoolProductKey]float64
	Schools       []SchoolRef
	MenusUsed     int
}

// ProductRefs returns the pivot's product axis, in the same name order as
// Products.
func (a *Aggregation) ProductRefs() []ProductRef {
	refs := make([]ProductRef, 0, len(a.Products))
	for _, p := range a.Products {
		refs = append(refs, ProductRef{ID: p.ProductID, Name: p.ProductName, Unit: p.UnitOfMeasure})
	}
	return refs
}

// Aggregator drives candidate rows through the price resolver and the
// quantity formula and reduces them on two keys: product_id for the rollup
// view and (school_id, product_id) for the pivot. The second reduction
// reuses the computed quantities of the first; nothing is re-derived.
type Aggregator struct {
	log *slog.Logger
}

func NewAggregator(log *slog.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Aggregate runs one pass over rows. It is a pure function of its inputs
// plus the resolver's per-run cache: identical inputs produce identical
// output, and zero rows produce a valid empty aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, rows []CandidateRow, resolver *PriceResolver) (*Aggregation, error) {
	a.log.Debug("aggregating candidate rowset", "rows", len(rows))

	byProduct := make(map[int]*DemandAggregate)
	bySchoolProduct := make(map[SchoolProductKey]float64)
	schoolNames := make(map[int]string)
	menusSeen := make(map[int]struct{})

	for _, row := range rows {
		unitPrice, err := resolver.Resolve(ctx, row.ProductID, row.ReferencePrice)
		if err != nil {
			return nil, err
		}

		perCapita := NumberOr(row.PerCapitaQuantity, 0)
		divisionFactor := NumberOr(row.DivisionFactor, 1)
		quantity := MonthlyQuantity(row.EnrolledStudents, row.MonthlyFrequency, perCapita, row.MeasurementType, divisionFactor)

		agg, ok := byProduct[row.ProductID]
		if !ok {
			agg = &DemandAggregate{
				ProductID:     row.ProductID,
				ProductName:   row.ProductName,
				UnitOfMeasure: row.UnitOfMeasure,
				UnitPrice:     unitPrice,
			}
			byProduct[row.ProductID] = agg
		}

		agg.QuantityTotal += quantity
		agg.ValueTotal += quantity * unitPrice
		agg.Detail = append(agg.Detail, DemandLine{
			SchoolID:          row.SchoolID,
			SchoolName:        row.SchoolName,
			ModalityID:        row.ModalityID,
			ModalityName:      row.ModalityName,
			MenuID:            row.MenuID,
			MenuName:          row.MenuName,
			MealID:            row.MealID,
			MealName:          row.MealName,
			ProductID:         row.ProductID,
			EnrolledStudents:  row.EnrolledStudents,
			MonthlyFrequency:  row.MonthlyFrequency,
			PerCapitaQuantity: perCapita,
			MeasurementType:   row.MeasurementType,
			DivisionFactor:    divisionFactor,
			ResolvedUnitPrice: unitPrice,
			ComputedQuantity:  quantity,
		})

		bySchoolProduct[SchoolProductKey{SchoolID: row.SchoolID, ProductID: row.ProductID}] += quantity
		schoolNames[row.SchoolID] = row.SchoolName
		menusSeen[row.MenuID] = struct{}{}
	}

	products := make([]DemandAggregate, 0, len(byProduct))
	zeroPriced := 0
	for _, agg := range byProduct {
		if agg.UnitPrice == 0 {
			zeroPriced++
		}
		products = append(products, *agg)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].ProductName != products[j].ProductName {
			return products[i].ProductName < products[j].ProductName
		}
		return products[i].ProductID < products[j].ProductID
	})

	if zeroPriced > 0 {
		a.log.Warn("products resolved to zero price", "count", zeroPriced)
	}

	schools := make([]SchoolRef, 0, len(schoolNames))
	for id, name := range schoolNames {
		schools = append(schools, SchoolRef{ID: id, Name: name})
	}
	sort.Slice(schools, func(i, j int) bool {
		if schools[i].Name != schools[j].Name {
			return schools[i].Name < schools[j].Name
		}
		return schools[i].ID < schools[j].ID
	})

	return &Aggregation{
		Products:      products,
		SchoolProduct: bySchoolProduct,
		Schools:       schools,
		MenusUsed:     len(menusSeen),
	}, nil
}
