package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rileyhilliard/sysmon/internal/metrics"
)

type handlers struct {
	source       Source
	defaultLimit int
	version      string
	started      time.Time
}

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}

func (h *handlers) stats(c *gin.Context) {
	stats, err := h.source.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: "couldn't collect system stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// processes serves the process list. sort_by accepts any column name or
// alias; only memory changes the backend ordering, everything else sorts by CPU.
func (h *handlers) processes(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, errorBody{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	sortBy, _ := metrics.ParseColumn(c.DefaultQuery("sort_by", "cpu"))

	procs, err := h.source.Processes(c.Request.Context(), sortBy, limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: "couldn't collect processes"})
		return
	}
	if procs == nil {
		procs = []metrics.ProcessInfo{}
	}
	c.JSON(http.StatusOK, procs)
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "up",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"version":   h.version,
	})
}
