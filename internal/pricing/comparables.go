package pricing

import (
	"math"
	"sort"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/models"
)

// Comparable eligibility window: when the target has a recommended price,
// candidates must price within [0.6x, 1.4x] of it.
const (
	ComparableRRPWindowLow  = 0.6
	ComparableRRPWindowHigh = 1.4
)

// Missing-data penalties. A candidate lacking an attribute the target has is
// pushed down the ranking without being excluded.
const (
	penaltyMissingPrice  = 10.0
	penaltyMissingPieces = 1.0
	penaltyMissingYear   = 1.0
)

// ComparableScore is the similarity distance between a target set and a
// candidate. Lower is more similar. Each term is a normalized deviation so
// that price, piece count and release year weigh on comparable scales; a
// target attribute that is absent (or zero) neutralizes its term entirely.
func ComparableScore(target catalog.SetView, c models.ComparableCandidate) float64 {
	var score float64

	if target.RRPGBP != nil && *target.RRPGBP != 0 {
		if c.RRPGBP == nil {
			score += penaltyMissingPrice
		} else {
			score += math.Abs(*c.RRPGBP-*target.RRPGBP) / *target.RRPGBP
		}
	}

	if target.Pieces != nil && *target.Pieces != 0 {
		if c.Pieces == nil {
			score += penaltyMissingPieces
		} else {
			score += math.Abs(float64(*c.Pieces-*target.Pieces)) / float64(*target.Pieces)
		}
	}

	if target.ReleaseYear != nil {
		if c.ReleaseYear == nil {
			score += penaltyMissingYear
		} else {
			score += math.Abs(float64(*c.ReleaseYear-*target.ReleaseYear)) / 10
		}
	}

	return score
}

// RankComparables orders candidates by ascending similarity distance, ties
// broken by set_number, and truncates to limit. The candidate list is
// expected to already satisfy the eligibility filter (target excluded, theme
// matched, recommended price inside the window).
func RankComparables(target catalog.SetView, candidates []models.ComparableCandidate, limit int) []models.ComparableCandidate {
	type scored struct {
		cand  models.ComparableCandidate
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{cand: c, score: ComparableScore(target, c)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score < ranked[j].score
		}
		return ranked[i].cand.SetNumber < ranked[j].cand.SetNumber
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.ComparableCandidate, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.cand)
	}
	return out
}

// ComparableRRPWindow returns the inclusive eligibility bounds for a target
// recommended price, or nils when the target has none.
func ComparableRRPWindow(targetRRP *float64) (min, max *float64) {
	if targetRRP == nil {
		return nil, nil
	}
	lo := *targetRRP * ComparableRRPWindowLow
	hi := *targetRRP * ComparableRRPWindowHigh
	return &lo, &hi
}
