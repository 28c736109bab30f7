// Command tickstat-server listens on a configurable port and serves the streaming statistics engine over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	elog "github.com/eluv-io/log-go"

	"github.com/eluv-io/tickstat-go/api"
	"github.com/eluv-io/tickstat-go/registry"
	"github.com/eluv-io/tickstat-go/util/syncutil"
)

const shutdownTimeout = 10 * time.Second

var log = elog.Get("/tickstat/server")

func main() {
	port := flag.Int("port", 3000, "listen port")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.SetLevel(*logLevel)

	r := registry.New()
	engine := api.NewRouter(r, log)

	addr := fmt.Sprintf("0.0.0.0:%d", *port)
	server := &http.Server{Addr: addr, Handler: engine}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped unexpectedly", "error", err)
		}
	}()

	waitForShutdownSignal()

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	if syncutil.WaitTimeout(&wg, shutdownTimeout) {
		log.Warn("server goroutine did not exit within shutdown timeout")
	}
}

func waitForShutdownSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
