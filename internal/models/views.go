package models

import "time"

// Derived, per-request shapes. None of these are persisted.

// OfferView is a retailer offer joined with its display name and the offer's
// deviation from the set's recommended price.
type OfferView struct {
	RetailerKey string     `json:"retailer_key"`
	Retailer    string     `json:"retailer"`
	ProductURL  *string    `json:"product_url"`
	PriceGBP    *float64   `json:"price_gbp"`
	StockState  StockState `json:"stock_state"`
	PctVsRRP    *float64   `json:"pct_vs_rrp"`
}

// WeeklyPricePoint is one calendar week of observed prices for a set.
type WeeklyPricePoint struct {
	WeekStart        time.Time `json:"week_start"`
	AvgPriceGBP      float64   `json:"avg_price_gbp"`
	MinPriceGBP      float64   `json:"min_price_gbp"`
	MaxPriceGBP      float64   `json:"max_price_gbp"`
	ObservationCount int       `json:"observation_count"`
}

// ComparableCandidate is a similarity candidate with its cheapest current
// offer and trailing-average context attached.
type ComparableCandidate struct {
	SetNumber           string     `json:"set_number"`
	Title               string     `json:"title"`
	Theme               *string    `json:"theme"`
	ReleaseYear         *int       `json:"release_year"`
	Pieces              *int       `json:"pieces"`
	RRPGBP              *float64   `json:"rrp_gbp"`
	BestCurrentPriceGBP *float64   `json:"best_current_price_gbp"`
	BestPriceRetailer   *string    `json:"best_price_retailer"`
	BestPricePctVsRRP   *float64   `json:"best_price_pct_vs_rrp"`
	LatestObservedAt    *time.Time `json:"latest_observed_at"`
	Last7dAvgPriceGBP   *float64   `json:"last_7d_avg_price_gbp"`
}

// CurrentOffer is the minimal tuple the drop detector walks.
type CurrentOffer struct {
	SetNumber   string
	Variant     int
	RetailerKey string
	Title       string
	Retailer    *string
	PriceGBP    *float64
}

// DropRow is one detected price movement (or a fallback row with the
// recommended price standing in, when observations are unavailable).
type DropRow struct {
	SetNumber string   `json:"set_number"`
	Title     string   `json:"title"`
	Retailer  *string  `json:"retailer"`
	NowPrice  *float64 `json:"now_price"`
	PrevPrice *float64 `json:"prev_price"`
	ChangePct *float64 `json:"change_pct"`
}

// ThemeSummary is one row of the theme rollup.
type ThemeSummary struct {
	Theme      string   `json:"theme"`
	SetCount   int      `json:"set_count"`
	FirstYear  *int     `json:"first_year"`
	LatestYear *int     `json:"latest_year"`
	AvgPieces  *float64 `json:"avg_pieces"`
}
