package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	elog "github.com/eluv-io/log-go"
	"github.com/eluv-io/tickstat-go/registry"
	"github.com/eluv-io/tickstat-go/util/ginutil"
)

const requestIDHeader = "X-Request-Id"

// NewRouter builds the gin engine that exposes the core engine's two operations, plus an operator-facing latency
// snapshot endpoint. r is the registry the handlers route into; log is the root logger, attached to every request
// via SetLogger so ginutil and the handlers log consistently.
func NewRouter(r *registry.Registry, log *elog.Log) *gin.Engine {
	h := newHandlers(r, log)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(loggingMiddleware(log))

	engine.POST("/add_batch", ginutil.Handle(h.handleAddBatch))
	engine.GET("/stats", ginutil.Handle(h.handleStats))
	engine.GET("/debug/latency", ginutil.Handle(h.handleLatencySnapshot))

	return engine
}

// requestID assigns a UUID to every request that doesn't already carry one, so that it can be correlated across log
// lines and echoed back to the caller.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs one line per request at Debug level, attaching log to the gin context so ginutil.Abort and
// the handlers pick it up for any error logging of their own.
func loggingMiddleware(log *elog.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		ginutil.SetLogger(c, log)

		start := time.Now()
		c.Next()

		log.Debug("request",
			"request_id", c.GetString(requestIDHeader),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
