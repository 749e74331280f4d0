package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"msgrelay/internal/app/adapters/metrics"
	"msgrelay/internal/app/infrastructure/storage"
)

type sendRequest struct {
	Text     string `json:"text"`
	TTL      int    `json:"ttl"`       // seconds; zero or omitted means the configured default
	MaxViews int    `json:"max_views"` // zero or omitted means the configured default
}

type sendResponse struct {
	ID        string `json:"id"`
	ExpiresIn int    `json:"expires_in"`
	Link      string `json:"link"`
}

func (h *Handlers) SendHandler(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	cfg := h.manager.Get()

	ttl := cfg.Relay.DefaultTTL
	if req.TTL != 0 {
		ttl = time.Duration(req.TTL) * time.Second
	}
	if ttl > cfg.Relay.MaxTTL {
		ttl = cfg.Relay.MaxTTL
	}

	views := cfg.Relay.DefaultMaxViews
	if req.MaxViews != 0 {
		views = req.MaxViews
	}
	if views > cfg.Relay.MaxViewsLimit {
		views = cfg.Relay.MaxViewsLimit
	}

	id, err := h.relay.Put(req.Text, ttl, views)
	switch {
	case errors.Is(err, storage.ErrInvalidConfig):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ttl and max_views must be positive"})
		return
	case errors.Is(err, storage.ErrCapacity):
		h.log.Warn("id space saturated")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "try again later"})
		return
	case err != nil:
		h.log.Error("store message", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	metrics.MessagesCreated.Inc()
	c.JSON(http.StatusOK, sendResponse{
		ID:        id,
		ExpiresIn: int(ttl.Seconds()),
		Link:      "/recv/" + id + "/view",
	})
}
