package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	elog "github.com/eluv-io/log-go"
	"github.com/eluv-io/tickstat-go/api/metrics"
	"github.com/eluv-io/tickstat-go/registry"
	"github.com/eluv-io/tickstat-go/util/ginutil"
)

// latencyCapacity bounds how many recent request durations each route's metrics.LatencyWindow retains.
const latencyCapacity = 1024

// handlers holds the dependencies shared by every route: the registry the core engine lives in, and a rolling
// latency window per route for the operator-facing /debug/latency endpoint.
type handlers struct {
	registry *registry.Registry
	addBatch *metrics.LatencyWindow
	stats    *metrics.LatencyWindow
	log      *elog.Log
}

func newHandlers(r *registry.Registry, log *elog.Log) *handlers {
	return &handlers{
		registry: r,
		addBatch: metrics.NewLatencyWindow(latencyCapacity),
		stats:    metrics.NewLatencyWindow(latencyCapacity),
		log:      log,
	}
}

// handleAddBatch implements POST /add_batch: it always succeeds once the payload itself is well-formed, per the
// boundary contract's "ingest always succeeds" rule.
func (h *handlers) handleAddBatch(c *gin.Context) error {
	start := time.Now()
	defer func() { h.addBatch.Record(time.Since(start).Microseconds()) }()

	var payload AddBatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		ginutil.AbortWithStatus(c, http.StatusBadRequest, err)
		return nil
	}

	if err := h.registry.Ingest(payload.Symbol, payload.Values); err != nil {
		return err
	}

	c.Status(http.StatusNoContent)
	return nil
}

// handleStats implements GET /stats: it validates k, routes to the registry, and serializes the result. InvalidK
// and Empty both surface as typed errors that ginutil.Abort maps to HTTP 418, per the boundary contract.
func (h *handlers) handleStats(c *gin.Context) error {
	start := time.Now()
	defer func() { h.stats.Record(time.Since(start).Microseconds()) }()

	var query StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		ginutil.AbortWithStatus(c, http.StatusBadRequest, err)
		return nil
	}

	result, err := h.registry.Query(query.Symbol, query.K)
	if err != nil {
		return err
	}

	ginutil.Send(c, http.StatusOK, StatsResponse{
		Min:  result.Min,
		Max:  result.Max,
		Last: result.Last,
		Avg:  result.Avg,
		Var:  result.Var,
	})
	return nil
}

// handleLatencySnapshot implements GET /debug/latency: an operator-facing view of the server's own request-latency
// distribution, not part of the core's boundary contract.
func (h *handlers) handleLatencySnapshot(c *gin.Context) error {
	addBatch := h.addBatch.Snapshot()
	stats := h.stats.Snapshot()

	ginutil.Send(c, http.StatusOK, gin.H{
		"add_batch_micros": gin.H{
			"count": addBatch.Count,
			"mean":  addBatch.MeanMicros,
			"p50":   addBatch.P50Micros,
			"p99":   addBatch.P99Micros,
			"span":  addBatch.Span.String(),
		},
		"stats_micros": gin.H{
			"count": stats.Count,
			"mean":  stats.MeanMicros,
			"p50":   stats.P50Micros,
			"p99":   stats.P99Micros,
			"span":  stats.Span.String(),
		},
	})
	return nil
}
