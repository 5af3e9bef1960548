package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/models"
	"github.com/auto72auto/wisebricks/internal/pricing"
)

const (
	dropModeObserved = "observed_price_drops"
	dropModeFallback = "sets_rrp_fallback"
)

// GetPriceDrops reports retailers whose current price undercuts their
// previous observation. When the observation path itself fails, the response
// switches to recently-updated sets with the recommended price standing in —
// callers branch on mode, not row shape.
func (h *APIHandler) GetPriceDrops(c *gin.Context) {
	ctx := c.Request.Context()
	limit := catalog.ParsePositiveInt(c.Query("limit"), catalog.DefaultDropsLimit)

	mode := dropModeObserved
	rows, err := h.observedDrops(c, limit)
	if err != nil {
		h.log.Warn("observed drops unavailable, using rrp fallback", "error", err)
		mode = dropModeFallback
		rows, err = h.store.RecentlyUpdatedSets(ctx, limit)
		if err != nil {
			h.log.Error("price drop fallback failed", "error", err)
			respondFailure(c, "Failed to load price drops", err)
			return
		}
	}
	if rows == nil {
		rows = []models.DropRow{}
	}

	c.JSON(http.StatusOK, gin.H{"mode": mode, "rows": rows})
}

func (h *APIHandler) observedDrops(c *gin.Context, limit int) ([]models.DropRow, error) {
	ctx := c.Request.Context()
	offers, err := h.store.CurrentPricedOffers(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.DetectDrops(offers, func(setNumber string, variant int, retailerKey string) (*float64, error) {
		return h.store.PrecedingPrice(ctx, setNumber, variant, retailerKey)
	}, limit)
}
