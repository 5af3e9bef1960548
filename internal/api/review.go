package api

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/models"
	"github.com/auto72auto/wisebricks/internal/pricing"
	"github.com/auto72auto/wisebricks/internal/store"
)

const (
	sectionOK          = "ok"
	sectionUnavailable = "unavailable"
)

// GetSetReview assembles the full detail view for one set: current offers,
// weekly price history and ranked comparables. The three sub-queries run
// concurrently and history/comparables degrade independently — a failed
// section reports mode "unavailable" with an empty list instead of taking
// the response down with it.
func (h *APIHandler) GetSetReview(c *gin.Context) {
	requested := strings.TrimSpace(c.Query("set"))
	if requested == "" {
		requested = strings.TrimSpace(c.Query("set_number"))
	}
	comparablesLimit := catalog.ParseBoundedPositiveInt(
		c.Query("comparables_limit"), catalog.DefaultComparablesLimit, catalog.MaxComparablesLimit)
	historyWeeks := catalog.ParseBoundedPositiveInt(
		c.Query("history_weeks"), catalog.DefaultHistoryWeeks, catalog.MaxHistoryWeeks)

	if requested == "" {
		respondError(c, http.StatusBadRequest, "set query parameter is required")
		return
	}

	ctx := c.Request.Context()
	set, err := h.store.SetByNumber(ctx, requested)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Set not found")
		return
	}
	if err != nil {
		h.log.Error("review set lookup failed", "error", err, "set_number", requested)
		respondFailure(c, "Failed to load review data", err)
		return
	}

	var (
		offers    []models.OfferView
		offersErr error

		points      = []models.WeeklyPricePoint{}
		historyMode = sectionOK

		comparables     = []models.ComparableCandidate{}
		comparablesMode = sectionOK
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		offers, offersErr = h.store.CurrentOffers(ctx, set.SetNumber, set.Variant)
	}()

	go func() {
		defer wg.Done()
		obs, obsErr := h.store.Observations(ctx, set.SetNumber, set.Variant)
		if obsErr != nil {
			h.log.Warn("weekly history unavailable", "error", obsErr, "set_number", set.SetNumber)
			historyMode = sectionUnavailable
			return
		}
		points = pricing.WeeklyHistory(obs, historyWeeks)
	}()

	go func() {
		defer wg.Done()
		minRRP, maxRRP := pricing.ComparableRRPWindow(set.RRPGBP)
		cands, candErr := h.store.ComparableCandidates(ctx, set.SetNumber, set.Theme, minRRP, maxRRP)
		if candErr != nil {
			h.log.Warn("comparables unavailable", "error", candErr, "set_number", set.SetNumber)
			comparablesMode = sectionUnavailable
			return
		}
		comparables = pricing.RankComparables(set, cands, comparablesLimit)
	}()

	wg.Wait()

	if offersErr != nil {
		h.log.Error("review offers failed", "error", offersErr, "set_number", set.SetNumber)
		respondFailure(c, "Failed to load review data", offersErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at":         time.Now().UTC().Format(time.RFC3339),
		"requested_set_number": requested,
		"set":                  set,
		"set_facts": gin.H{
			"price_per_piece_gbp": pricePerPiece(set),
		},
		"snapshot":  buildSnapshot(offers, points),
		"retailers": offers,
		"history": gin.H{
			"mode":            historyMode,
			"weeks_requested": historyWeeks,
			"points":          points,
		},
		"comparables": gin.H{
			"mode":    comparablesMode,
			"limit":   comparablesLimit,
			"results": comparables,
		},
	})
}

func pricePerPiece(set catalog.SetView) *float64 {
	if set.RRPGBP == nil || set.Pieces == nil || *set.Pieces <= 0 {
		return nil
	}
	v := pricing.Round4(*set.RRPGBP / float64(*set.Pieces))
	return &v
}

func buildSnapshot(offers []models.OfferView, points []models.WeeklyPricePoint) gin.H {
	var lowest, highest *float64
	for _, offer := range offers {
		if offer.PriceGBP == nil {
			continue
		}
		p := *offer.PriceGBP
		if lowest == nil || p < *lowest {
			v := p
			lowest = &v
		}
		if highest == nil || p > *highest {
			v := p
			highest = &v
		}
	}

	var latest *string
	if len(points) > 0 {
		ts := points[len(points)-1].WeekStart.UTC().Format(time.RFC3339)
		latest = &ts
	}

	return gin.H{
		"retailer_count":            len(offers),
		"lowest_current_price_gbp":  lowest,
		"highest_current_price_gbp": highest,
		"latest_observation_at":     latest,
	}
}
