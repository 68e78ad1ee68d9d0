package campaign

import (
	"github.com/shopspring/decimal"

	"causajusta/internal/upstream"
)

// Fallback rates used when the public commission-rates endpoint is down.
var (
	fallbackPlatformRate    = decimal.NewFromFloat(0.05)
	fallbackMercadoPagoRate = decimal.NewFromFloat(0.0405)
)

// Rates are the fee fractions applied to a campaign goal.
type Rates struct {
	Platform    decimal.Decimal
	MercadoPago decimal.Decimal
}

// DefaultRates returns the hardcoded fallback rates.
func DefaultRates() Rates {
	return Rates{Platform: fallbackPlatformRate, MercadoPago: fallbackMercadoPagoRate}
}

// RatesFrom converts the upstream payload, falling back per field when the
// upstream sends zeroes.
func RatesFrom(upstreamRates *upstream.CommissionRates) Rates {
	rates := DefaultRates()
	if upstreamRates == nil {
		return rates
	}
	if upstreamRates.PlatformCommission > 0 {
		rates.Platform = decimal.NewFromFloat(upstreamRates.PlatformCommission)
	}
	if upstreamRates.MercadoPagoFee > 0 {
		rates.MercadoPago = decimal.NewFromFloat(upstreamRates.MercadoPagoFee)
	}
	return rates
}

// Breakdown is the fee split shown next to the goal amount input.
type Breakdown struct {
	Goal           decimal.Decimal `json:"goal"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	MercadoPagoFee decimal.Decimal `json:"mercadoPagoFee"`
	TotalNet       decimal.Decimal `json:"totalNet"`
}

// ComputeBreakdown splits a goal amount into fees and the net the beneficiary
// receives. Fees round to cents half-up.
func ComputeBreakdown(goal decimal.Decimal, rates Rates) Breakdown {
	platformFee := goal.Mul(rates.Platform).Round(2)
	mercadoPagoFee := goal.Mul(rates.MercadoPago).Round(2)
	return Breakdown{
		Goal:           goal,
		PlatformFee:    platformFee,
		MercadoPagoFee: mercadoPagoFee,
		TotalNet:       goal.Sub(platformFee).Sub(mercadoPagoFee),
	}
}
