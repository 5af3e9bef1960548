package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/auto72auto/wisebricks/internal/logger"
	"github.com/auto72auto/wisebricks/internal/store"
)

type APIHandler struct {
	store store.Store
	log   *logger.Logger
}

func SetupRoutes(r *gin.RouterGroup, st store.Store, log *logger.Logger) *APIHandler {
	handler := &APIHandler{
		store: st,
		log:   log.With("component", "api"),
	}

	r.GET("/sets", handler.SearchSets)
	r.GET("/sets/review", handler.GetSetReview)
	r.GET("/sets/:set_number", handler.GetSet)
	r.GET("/price-drops", handler.GetPriceDrops)
	r.GET("/themes", handler.ListThemes)
	r.GET("/export/sets.xlsx", handler.ExportSets)

	return handler
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondFailure is for fatal paths: the message stays human-readable and the
// underlying detail rides along, never a stack trace.
func respondFailure(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": message, "detail": err.Error()})
}
