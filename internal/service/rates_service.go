package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"causajusta/internal/cache"
	"causajusta/internal/campaign"
	"causajusta/internal/upstream"
)

const (
	ratesCacheKey = "commission_rates"
	ratesCacheTTL = 10 * time.Minute
)

// RatesService resolves the current commission rates, caching the public
// endpoint and falling back to the hardcoded rates when it is unreachable.
type RatesService interface {
	Current(ctx context.Context) campaign.Rates
	BreakdownFor(ctx context.Context, goal float64) campaign.Breakdown
}

type ratesService struct {
	client *upstream.Client
	cache  *cache.Client
}

// NewRatesService creates a new rates service.
func NewRatesService(client *upstream.Client, cacheClient *cache.Client) RatesService {
	return &ratesService{client: client, cache: cacheClient}
}

// Current returns the effective rates. Never errors: rate lookups degrade to
// the fallback values so the fee breakdown always renders.
func (s *ratesService) Current(ctx context.Context) campaign.Rates {
	payload, err := s.cache.Remember(ctx, ratesCacheKey, ratesCacheTTL, func(ctx context.Context) ([]byte, error) {
		rates, err := s.client.GetCommissionRates(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rates)
	})
	if err != nil {
		return campaign.DefaultRates()
	}

	var rates upstream.CommissionRates
	if err := json.Unmarshal(payload, &rates); err != nil {
		return campaign.DefaultRates()
	}
	return campaign.RatesFrom(&rates)
}

// BreakdownFor computes the fee breakdown for a goal amount at current rates.
func (s *ratesService) BreakdownFor(ctx context.Context, goal float64) campaign.Breakdown {
	return campaign.ComputeBreakdown(decimal.NewFromFloat(goal), s.Current(ctx))
}
