package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"

	"msgrelay/internal/app/adapters/metrics"
)

func (h *Handlers) HealthHandler(c *gin.Context) {
	live := h.relay.Len()
	metrics.LiveMessages.Set(float64(live))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	cpuPercent := 0.0
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"messages":    live,
		"goroutines":  runtime.NumGoroutine(),
		"alloc_bytes": mem.Alloc,
		"cpu_percent": cpuPercent,
	})
}
