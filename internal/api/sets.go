package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/models"
	"github.com/auto72auto/wisebricks/internal/store"
)

func (h *APIHandler) GetSet(c *gin.Context) {
	setNumber := strings.TrimSpace(c.Param("set_number"))
	if setNumber == "" {
		respondError(c, http.StatusBadRequest, "setNumber is required")
		return
	}

	set, err := h.store.SetByNumber(c.Request.Context(), setNumber)
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, "Set not found")
		return
	}
	if err != nil {
		h.log.Error("set lookup failed", "error", err, "set_number", setNumber)
		respondFailure(c, "Failed to load set", err)
		return
	}

	offers, err := h.store.CurrentOffers(c.Request.Context(), set.SetNumber, set.Variant)
	if err != nil {
		h.log.Error("current offers failed", "error", err, "set_number", setNumber)
		respondFailure(c, "Failed to load set", err)
		return
	}

	// Only offers with a usable product link belong on the lookup surface.
	linked := make([]models.OfferView, 0, len(offers))
	for _, offer := range offers {
		if offer.ProductURL != nil && strings.TrimSpace(*offer.ProductURL) != "" {
			linked = append(linked, offer)
		}
	}

	c.JSON(http.StatusOK, gin.H{"set": set, "retailers": linked})
}
