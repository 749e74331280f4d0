package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  256,
	WriteBufferSize: 256,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// WatchHandler streams the remaining lifetime of a message once per second
// over a websocket and closes when the message dies. Watching never consumes
// a view.
func (h *Handlers) WatchHandler(c *gin.Context) {
	id := c.Param("id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", "error", err.Error())
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		deadline, ok := h.relay.ExpiresAt(id)
		if !ok {
			_ = conn.WriteJSON(gin.H{"remaining": 0, "gone": true})
			return
		}

		remaining := int(time.Until(deadline).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		if err := conn.WriteJSON(gin.H{"remaining": remaining, "gone": false}); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
