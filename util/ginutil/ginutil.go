// Package ginutil bridges the engine's sum-typed errors to gin's HTTP response writing, so that handlers can be
// written with idiomatic Go error returns instead of calling response helpers in every branch.
package ginutil

import (
	"encoding"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/eluv-io/tickstat-go/util/stackutil"
)

const loggerKey = "ginutil.LOGGER"

// Handle "extends" a regular gin.HandlerFunc with an error return value. If fn() returns an error, it calls Abort.
// Otherwise, it does nothing and expects fn() to have sent an HTTP response itself.
func Handle(fn func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			Abort(c, err)
		}
	}
}

// Abort aborts the current HTTP request with the given error. The HTTP status code is derived from the error's
// kind. Errors whose kind is not explicitly mapped are treated as unexpected ("Other"): they get a 500 and, if debug
// logging is enabled, trigger a dump of all goroutine stacks to help post-mortem debugging. The logger (an instance
// of eluv-io/log-go) can be set on the gin context via SetLogger; the root logger is used otherwise.
func Abort(c *gin.Context, err error) {
	AbortWithStatus(c, abortCode(c, err), err)
}

func abortCode(c *gin.Context, err error) int {
	code := http.StatusInternalServerError
	if e, ok := err.(*errors.Error); ok {
		switch e.Kind() {
		case errors.K.Invalid:
			code = http.StatusTeapot
		case errors.K.NotExist:
			code = http.StatusTeapot
		case errors.K.Cancelled, errors.K.Timeout:
			code = http.StatusBadRequest
		case errors.K.Unavailable:
			code = http.StatusServiceUnavailable
		default:
			dumpGoRoutines(c)
		}
	} else {
		dumpGoRoutines(c)
	}
	return code
}

// AbortWithStatus aborts the current HTTP request with the given status code and error.
func AbortWithStatus(c *gin.Context, code int, err error) {
	c.Abort()
	SendError(c, code, err)
}

// SendError sends back a JSON error response, shaped as `{"errors": [err]}`.
func SendError(c *gin.Context, code int, err error) {
	if err != nil {
		getLog(c).Debug("api error", "code", code, "error", err)
	}

	c.Writer.Header().Del("Content-Type")
	c.Writer.Header().Del("Cache-Control")

	switch t := err.(type) {
	case *errors.ErrorList:
		// error list marshals exactly as we want it: {"errors": [ e1, e2, ... ]}
		c.JSON(code, t)
	case json.Marshaler,
		encoding.TextMarshaler:
		// this includes *errors.Error: the error marshals correctly
		c.JSON(code, gin.H{"errors": []interface{}{t}})
	default:
		if err != nil {
			c.JSON(code, gin.H{"errors": []interface{}{err.Error()}})
		} else {
			c.JSON(code, gin.H{"errors": []interface{}{err}})
		}
	}
}

// Send sends back a JSON response with the given status code.
func Send(c *gin.Context, code int, data interface{}) {
	c.Writer.Header().Del("Content-Type")
	if code <= 0 {
		return
	}
	c.JSON(code, data)
}

// SetLogger sets the logger for all logging performed in this package on the given gin context.
func SetLogger(c *gin.Context, logger *elog.Log) {
	c.Set(loggerKey, logger)
}

// dumpGoRoutines prints the stack of all goroutines to the log.
func dumpGoRoutines(c *gin.Context) {
	log := getLog(c)
	if !log.IsDebug() {
		return
	}
	log.Error("dumping go-routines", "dump", stackutil.FullStack())
}

// getLog returns the logger from the gin context or the root logger.
func getLog(c *gin.Context) (log *elog.Log) {
	if clg, ok := c.Get(loggerKey); ok {
		log, _ = clg.(*elog.Log)
	}
	if log == nil {
		log = elog.Get("/")
	}
	return log
}
