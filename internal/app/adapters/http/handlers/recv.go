package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"msgrelay/internal/app/adapters/metrics"
)

// RecvHandler consumes one view. Absent, expired and view-exhausted ids all
// answer the same 404 so a reader learns nothing about a message's history.
func (h *Handlers) RecvHandler(c *gin.Context) {
	payload, ok := h.relay.Take(c.Param("id"))
	if !ok {
		metrics.TakeOutcomes.WithLabelValues("miss").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found or expired"})
		return
	}

	metrics.TakeOutcomes.WithLabelValues("claimed").Inc()
	c.JSON(http.StatusOK, gin.H{"text": payload})
}
