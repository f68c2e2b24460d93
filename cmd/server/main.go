package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/avieira/paperbroker/internal/adapter/http"
	"github.com/avieira/paperbroker/internal/adapter/repository/memory"
	"github.com/avieira/paperbroker/internal/adapter/repository/sqlite"
	"github.com/avieira/paperbroker/internal/usecase/directory"
	"github.com/avieira/paperbroker/internal/usecase/seeder"
	"github.com/avieira/paperbroker/internal/usecase/trading"
)

const (
	defaultAddr         = ":8080"
	defaultSnapshotPath = "paperbroker.db"
)

func main() {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	snapshotPath := os.Getenv("SNAPSHOT_DB")
	if snapshotPath == "" {
		snapshotPath = defaultSnapshotPath
	}

	// 1. Open the user snapshot store
	store, err := sqlite.NewUserStore(snapshotPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()

	// 2. Initialize repositories (in-memory market state)
	catalog := memory.NewCatalog()
	txLog := memory.NewTransactionLog()

	// 3. Initialize services
	directoryService := directory.NewService(store)
	tradingService := trading.NewService(catalog, txLog)

	ctx := context.Background()
	if err := directoryService.Load(ctx); err != nil {
		// A missing or corrupt snapshot starts the directory empty
		log.Printf("Warning: could not load user snapshot, starting empty: %v", err)
	}

	marketSeeder := seeder.NewMarketSeeder(catalog)
	marketSeeder.Seed()
	log.Println("Market listings seeded successfully")

	// 4. Start the HTTP server
	server := httpadapter.NewServer(directoryService, tradingService, catalog, txLog)

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := server.Start(addr); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()

	waitForShutdown(server)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *httpadapter.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
