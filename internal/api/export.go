package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/export"
	"github.com/auto72auto/wisebricks/internal/pricing"
)

// ExportSets streams the full ranked result set of a search as an XLSX
// workbook. Same filter surface as the search endpoint, no pagination.
func (h *APIHandler) ExportSets(c *gin.Context) {
	p := parseSearchParams(c)

	matches, err := h.store.SearchSets(c.Request.Context(), p.query, p.themes)
	if err != nil {
		h.log.Error("export search failed", "error", err, "query", p.query)
		respondFailure(c, "Failed to export sets", err)
		return
	}

	filtered := applyBucketFilter(matches, p)
	results, _ := pricing.RankSearch(filtered, p.query, p.sortBy, p.sortDir, 0, 0)

	workbook, err := export.SearchWorkbook(results)
	if err != nil {
		h.log.Error("workbook build failed", "error", err)
		respondFailure(c, "Failed to export sets", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sets.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if _, err := workbook.WriteTo(c.Writer); err != nil {
		h.log.Error("workbook write failed", "error", err)
	}
}
