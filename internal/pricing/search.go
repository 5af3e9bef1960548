package pricing

import (
	"sort"
	"strings"

	"github.com/auto72auto/wisebricks/internal/catalog"
)

// Relevance tiers for a non-empty query, ascending. Lower is more relevant.
const (
	tierExactSetNumber = 0
	tierSetNumber      = 1
	tierTitle          = 2
	tierTheme          = 3
	tierCatchAll       = 4
)

// MatchesQuery is the free-text predicate: case-insensitive substring match
// against set number, title or theme. An empty query matches everything.
func MatchesQuery(s catalog.SetView, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.SetNumber), q) {
		return true
	}
	if strings.Contains(strings.ToLower(s.Title), q) {
		return true
	}
	if s.Theme != nil && strings.Contains(strings.ToLower(*s.Theme), q) {
		return true
	}
	return false
}

// RelevanceTier ranks how a set matched a non-empty query.
func RelevanceTier(s catalog.SetView, query string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	num := strings.ToLower(s.SetNumber)
	switch {
	case num == q:
		return tierExactSetNumber
	case strings.Contains(num, q):
		return tierSetNumber
	case strings.Contains(strings.ToLower(s.Title), q):
		return tierTitle
	case s.Theme != nil && strings.Contains(strings.ToLower(*s.Theme), q):
		return tierTheme
	default:
		return tierCatchAll
	}
}

// RankSearch orders the full match set and cuts one page out of it. The
// returned total is the size of the match set before pagination, which is
// what keeps "load more" clients terminating.
//
// With a non-empty query the ordering is relevance tier, then set number,
// then variant. With an empty query it is the requested sort key and
// direction; a price sort puts unpriced sets last in both directions. The
// final set_number/variant tie-break makes pagination deterministic.
func RankSearch(sets []catalog.SetView, query, sortBy, sortDir string, limit, offset int) ([]catalog.SetView, int) {
	ranked := make([]catalog.SetView, len(sets))
	copy(ranked, sets)

	query = strings.TrimSpace(query)
	if query != "" {
		tiers := make([]int, len(ranked))
		for i, s := range ranked {
			tiers[i] = RelevanceTier(s, query)
		}
		idx := make([]int, len(ranked))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			i, j := idx[a], idx[b]
			if tiers[i] != tiers[j] {
				return tiers[i] < tiers[j]
			}
			return lessByIdentity(ranked[i], ranked[j])
		})
		ordered := make([]catalog.SetView, len(ranked))
		for out, i := range idx {
			ordered[out] = ranked[i]
		}
		ranked = ordered
	} else {
		sort.SliceStable(ranked, func(i, j int) bool {
			if c := compareBySortKey(ranked[i], ranked[j], sortBy, sortDir); c != 0 {
				return c < 0
			}
			return lessByIdentity(ranked[i], ranked[j])
		})
	}

	total := len(ranked)
	return page(ranked, limit, offset), total
}

func page(sets []catalog.SetView, limit, offset int) []catalog.SetView {
	if offset >= len(sets) {
		return []catalog.SetView{}
	}
	end := offset + limit
	if limit <= 0 || end > len(sets) {
		end = len(sets)
	}
	return sets[offset:end]
}

func lessByIdentity(a, b catalog.SetView) bool {
	if a.SetNumber != b.SetNumber {
		return a.SetNumber < b.SetNumber
	}
	return a.Variant < b.Variant
}

// compareBySortKey returns -1/0/1 under the requested key and direction.
func compareBySortKey(a, b catalog.SetView, sortBy, sortDir string) int {
	desc := sortDir == catalog.SortDesc
	switch sortBy {
	case catalog.SortByPrice:
		// Nulls last regardless of direction.
		switch {
		case a.RRPGBP == nil && b.RRPGBP == nil:
			return 0
		case a.RRPGBP == nil:
			return 1
		case b.RRPGBP == nil:
			return -1
		case *a.RRPGBP == *b.RRPGBP:
			return 0
		case *a.RRPGBP < *b.RRPGBP:
			return direction(-1, desc)
		default:
			return direction(1, desc)
		}
	case catalog.SortByTitle:
		return direction(strings.Compare(a.Title, b.Title), desc)
	default:
		return direction(strings.Compare(a.SetNumber, b.SetNumber), desc)
	}
}

func direction(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}
