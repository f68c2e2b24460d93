package main

import (
	"context"
	"log"
	"os"

	"github.com/avieira/paperbroker/internal/adapter/console"
	"github.com/avieira/paperbroker/internal/adapter/repository/memory"
	"github.com/avieira/paperbroker/internal/adapter/repository/sqlite"
	"github.com/avieira/paperbroker/internal/usecase/directory"
	"github.com/avieira/paperbroker/internal/usecase/seeder"
	"github.com/avieira/paperbroker/internal/usecase/trading"
)

const defaultSnapshotPath = "paperbroker.db"

func main() {
	snapshotPath := os.Getenv("SNAPSHOT_DB")
	if snapshotPath == "" {
		snapshotPath = defaultSnapshotPath
	}

	store, err := sqlite.NewUserStore(snapshotPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()

	catalog := memory.NewCatalog()
	txLog := memory.NewTransactionLog()

	directoryService := directory.NewService(store)
	tradingService := trading.NewService(catalog, txLog)

	ctx := context.Background()
	if err := directoryService.Load(ctx); err != nil {
		log.Printf("Warning: could not load user snapshot, starting empty: %v", err)
	}

	seeder.NewMarketSeeder(catalog).Seed()

	ui := console.New(os.Stdin, os.Stdout, directoryService, tradingService, catalog, txLog)
	if err := ui.Run(ctx); err != nil {
		log.Fatalf("Console error: %v", err)
	}
}
