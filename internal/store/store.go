// Package store is the read-only query layer over the externally-owned
// catalog and observation tables. Everything above it consumes this narrow
// interface; the heavy lifting (scoring, bucketing, pagination) happens in
// the pricing package over what these methods return.
package store

import (
	"context"
	"errors"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/models"
)

// ErrNotFound reports that no catalog entry matched a primary lookup.
var ErrNotFound = errors.New("set not found")

type Store interface {
	// SetByNumber looks a set up by catalog number alone; when several
	// variants share the number the lowest variant wins.
	SetByNumber(ctx context.Context, setNumber string) (catalog.SetView, error)

	// CurrentOffers returns the current retailer listings for one set with
	// display names resolved and percent-vs-recommended computed.
	CurrentOffers(ctx context.Context, setNumber string, variant int) ([]models.OfferView, error)

	// Observations returns the priced observation stream for one set,
	// ascending by observation time.
	Observations(ctx context.Context, setNumber string, variant int) ([]models.PriceObservation, error)

	// PrecedingPrice returns the price of the observation immediately before
	// the most recent one for a retailer tuple, or nil when there is none.
	PrecedingPrice(ctx context.Context, setNumber string, variant int, retailerKey string) (*float64, error)

	// ComparableCandidates returns every set eligible as a comparable for
	// the given exclusion/theme/price-window filter, with cheapest current
	// offer and 7-day trailing average attached. Ranking is the caller's
	// job.
	ComparableCandidates(ctx context.Context, excludeSetNumber string, theme *string, minRRP, maxRRP *float64) ([]models.ComparableCandidate, error)

	// SearchSets returns every set matching the free-text predicate and the
	// theme facet. Price-bucket filtering, relevance ordering and pagination
	// happen in the caller.
	SearchSets(ctx context.Context, query string, themes []string) ([]catalog.SetView, error)

	// CurrentPricedOffers returns every current offer that has a price,
	// across the whole catalog, for drop detection.
	CurrentPricedOffers(ctx context.Context) ([]models.CurrentOffer, error)

	// RecentlyUpdatedSets returns priced sets ordered by most recent update,
	// the stand-in source when observation history is unavailable.
	RecentlyUpdatedSets(ctx context.Context, limit int) ([]models.DropRow, error)

	// ThemeSummaries returns the per-theme catalog rollup, largest themes
	// first.
	ThemeSummaries(ctx context.Context, limit int) ([]models.ThemeSummary, error)
}
