package demand

import (
	"context"
	"time"
)

// PriceResolver resolves the effective unit price of a product on the run's
// evaluation date.
//
// Precedence: the maximum price among simultaneously valid active contracts
// (a conservative budgeting choice), then the product's reference price,
// then 0. An active-contract price always wins over the reference price,
// even when numerically lower.
//
// The cache is scoped to one run: contract state and evaluation date can
// change between requests, so resolvers must never be shared across them.
type PriceResolver struct {
	gateway        Gateway
	evaluationDate time.Time
	cache          map[int]float64
}

func NewPriceResolver(gateway Gateway, evaluationDate time.Time) *PriceResolver {
	return &PriceResolver{
		gateway:        gateway,
		evaluationDate: evaluationDate,
		cache:          make(map[int]float64),
	}
}

// Resolve returns the unit price for productID. referencePrice is the
// product's own reference price column (nil when absent); it only applies
// when no active contract covers the evaluation date. A gateway failure
// propagates; absence of price data does not.
func (p *PriceResolver) Resolve(ctx context.Context, productID int, referencePrice *float64) (float64, error) {
	if price, ok := p.cache[productID]; ok {
		return price, nil
	}

	prices, err := p.gateway.ActiveContractPrices(ctx, productID, p.evaluationDate)
	if err != nil {
		return 0, err
	}

	var price float64
	if len(prices) > 0 {
		price = prices[0]
		for _, v := range prices[1:] {
			if v > price {
				price = v
			}
		}
	} else {
		price = NumberOr(referencePrice, 0)
	}

	p.cache[productID] = price
	return price, nil
}
