// Command tacmap-relay shares tactical map lines between connected clients.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tacmap/internal/logging"
	"tacmap/linesync"
	"tacmap/mapview"

	"github.com/gin-gonic/gin"
)

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	limit := flag.Int("limit", mapview.DefaultLineLimit, "lines kept for late joiners; negative keeps all")
	logDir := flag.String("logs", "logs", "log directory; empty disables log files")
	debug := flag.Bool("debug", false, "verbose/debug logging")
	flag.Parse()

	logging.Setup(*logDir, *debug)
	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := linesync.NewHub(*limit)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           newRouter(hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("relay listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("listen: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Print("shutdown signal received")

	hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("shutdown: %v", err)
	}
}
