package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/catalog"
	"github.com/auto72auto/wisebricks/internal/models"
)

func (h *APIHandler) ListThemes(c *gin.Context) {
	limit := catalog.ParsePositiveInt(c.Query("limit"), catalog.DefaultThemesLimit)

	themes, err := h.store.ThemeSummaries(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("theme summary failed", "error", err)
		respondFailure(c, "Failed to load themes", err)
		return
	}
	if themes == nil {
		themes = []models.ThemeSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"themes": themes})
}
