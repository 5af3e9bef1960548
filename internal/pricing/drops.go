package pricing

import (
	"sort"

	"github.com/auto72auto/wisebricks/internal/models"
)

// PrevPriceFunc resolves the observation immediately preceding the current
// one for a (set, variant, retailer) tuple; nil when no prior observation
// exists.
type PrevPriceFunc func(setNumber string, variant int, retailerKey string) (*float64, error)

// ChangePct is the percent movement from prev to now, rounded to 1 decimal.
// Nil when the previous price is zero.
func ChangePct(now, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	pct := Round1((now - prev) / prev * 100)
	return &pct
}

// DetectDrops walks the current priced offers and emits a row for every
// retailer whose current price is strictly below its immediately preceding
// observation. Rows are ordered by ascending percent change, so the steepest
// drop comes first, and truncated to limit. Any lookup error aborts the scan
// so the caller can switch to its fallback source.
func DetectDrops(offers []models.CurrentOffer, prevPrice PrevPriceFunc, limit int) ([]models.DropRow, error) {
	var rows []models.DropRow
	for _, offer := range offers {
		if offer.PriceGBP == nil {
			continue
		}
		prev, err := prevPrice(offer.SetNumber, offer.Variant, offer.RetailerKey)
		if err != nil {
			return nil, err
		}
		if prev == nil || *offer.PriceGBP >= *prev {
			continue
		}
		now := *offer.PriceGBP
		rows = append(rows, models.DropRow{
			SetNumber: offer.SetNumber,
			Title:     offer.Title,
			Retailer:  offer.Retailer,
			NowPrice:  &now,
			PrevPrice: prev,
			ChangePct: ChangePct(now, *prev),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].ChangePct, rows[j].ChangePct
		if ci == nil {
			return false
		}
		if cj == nil {
			return true
		}
		return *ci < *cj
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
