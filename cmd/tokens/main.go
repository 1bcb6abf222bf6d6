package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"futurenews/db"
	"futurenews/internal/config"
	"futurenews/internal/entitlement"
	"futurenews/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	count := flag.Int("n", 1, "number of tokens to issue")
	generations := flag.Int("generations", 10, "generations granted per token")
	check := flag.String("check", "", "print the status of an existing token and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	ledger := entitlement.NewLedger(repository.NewEntitlementRepository(db.DB, cfg.DatabaseDriver), cfg.FreeTrialLimit)
	ctx := context.Background()

	if *check != "" {
		status, err := ledger.TokenStatus(ctx, *check)
		if err != nil {
			log.Fatalf("error checking token: %v", err)
		}
		fmt.Printf("valid=%t remaining=%d\n", status.Valid, status.RemainingGenerations)
		return
	}

	for i := 0; i < *count; i++ {
		token, err := ledger.IssueToken(ctx, *generations)
		if err != nil {
			log.Fatalf("error issuing token: %v", err)
		}
		fmt.Println(token.Token)
	}

	slog.Info("tokens issued", "count", *count, "generations", *generations)
}
