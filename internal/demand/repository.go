package demand

import (
	"context"
	"time"
)

// Gateway is the data access boundary of the engine: two bulk reads, both
// parameterized, both read-only. Everything the aggregation needs is fetched
// up front; no mid-computation I/O besides price lookups, which the resolver
// memoizes per run.
type Gateway interface {

	// CandidateRows returns every school×modality×menu×meal×product
	// combination matching the filter, with menus restricted to those
	// active and valid on evaluationDate.
	CandidateRows(ctx context.Context, f Filter, evaluationDate time.Time) ([]CandidateRow, error)

	// ActiveContractPrices returns the prices of all contract_products rows
	// whose parent contract is active and whose validity window contains
	// evaluationDate (inclusive on both ends).
	ActiveContractPrices(ctx context.Context, productID int, evaluationDate time.Time) ([]float64, error)
}
