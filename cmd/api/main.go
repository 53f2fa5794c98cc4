package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/pawhaven/adopt-api/internal/app/api"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("api exited: %v", err)
	}
}
