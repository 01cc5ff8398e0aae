package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/willmarzolf/radio-calico/config"
	"github.com/willmarzolf/radio-calico/internal/http/metadata"
	api "github.com/willmarzolf/radio-calico/internal/http/rest"
	"github.com/willmarzolf/radio-calico/internal/store"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()

	ratings, err := store.Open(cfg)
	if err != nil {
		log.Panicln("failed to open rating store", "error", err)
	}

	a := &api.API{
		Config:   cfg,
		Store:    ratings,
		Metadata: metadata.NewClient(cfg.MetadataURL),
	}
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Waiting for in-flight requests for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	if err := a.Shutdown(); err != nil {
		log.Println("server shutdown failed", "error", err)
	}

	if err := ratings.Close(); err != nil {
		log.Println("failed to close rating store", "error", err)
	}
	log.Println("Rating store closed.")
}
