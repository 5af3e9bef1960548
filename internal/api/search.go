package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/pricing"
)

// searchParams is the validated shape of the untrusted /sets query string.
type searchParams struct {
	query      string
	limit      int
	offset     int
	themes     []string
	bucketKeys []string
	buckets    []catalog.PriceBucket
	sortBy     string
	sortDir    string
}

func parseSearchParams(c *gin.Context) searchParams {
	bucketKeys := catalog.ParseListParam(c.Query("price_buckets"))
	return searchParams{
		query:      strings.TrimSpace(c.Query("q")),
		limit:      catalog.ParsePositiveInt(c.Query("limit"), catalog.DefaultSearchLimit),
		offset:     catalog.ParseNonNegativeInt(c.Query("offset"), 0),
		themes:     catalog.ParseListParam(c.Query("themes")),
		bucketKeys: bucketKeys,
		buckets:    catalog.ParsePriceBuckets(bucketKeys),
		sortBy:     catalog.ParseSortBy(c.Query("sort_by")),
		sortDir:    catalog.ParseSortDir(c.Query("sort_dir")),
	}
}

// applyBucketFilter keeps the sets matching the selected price buckets. A
// selection with no recognized keys matches nothing; no selection at all
// leaves the input untouched.
func applyBucketFilter(sets []catalog.SetView, p searchParams) []catalog.SetView {
	if len(p.bucketKeys) == 0 {
		return sets
	}
	kept := make([]catalog.SetView, 0, len(sets))
	if len(p.buckets) == 0 {
		return kept
	}
	for _, s := range sets {
		if catalog.BucketsMatch(s.RRPGBP, p.buckets) {
			kept = append(kept, s)
		}
	}
	return kept
}

func (h *APIHandler) SearchSets(c *gin.Context) {
	p := parseSearchParams(c)

	matches, err := h.store.SearchSets(c.Request.Context(), p.query, p.themes)
	if err != nil {
		h.log.Error("set search failed", "error", err, "query", p.query)
		respondFailure(c, "Failed to query sets", err)
		return
	}

	filtered := applyBucketFilter(matches, p)
	results, total := pricing.RankSearch(filtered, p.query, p.sortBy, p.sortDir, p.limit, p.offset)

	c.JSON(http.StatusOK, gin.H{
		"query":         p.query,
		"offset":        p.offset,
		"limit":         p.limit,
		"count":         len(results),
		"total_count":   total,
		"results":       results,
		"themes":        echoList(p.themes),
		"price_buckets": echoList(p.bucketKeys),
		"sort_by":       p.sortBy,
		"sort_dir":      p.sortDir,
	})
}

func echoList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
