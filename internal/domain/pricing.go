package domain

// PricingConfig is the single mutable pricing configuration: flat daily
// rates applied to every loan regardless of tool.
type PricingConfig struct {
	ID                  int32 `json:"id"`
	RentalFeeDailyCents int64 `json:"rental_fee_daily_cents"`
	LateFeeDailyCents   int64 `json:"late_fee_daily_cents"`
}

// FeeQuote is the result of a fee calculation: the day count it covers,
// the daily rate applied and the resulting total.
type FeeQuote struct {
	Days           int32 `json:"days"`
	DailyRateCents int64 `json:"daily_rate_cents"`
	TotalCents     int64 `json:"total_cents"`
}
