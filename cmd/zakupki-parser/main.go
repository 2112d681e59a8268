package main

import (
	"context"
	"log"

	"zakupki-parser/internal"
)

func main() {
	ctx := context.Background()

	application, err := internal.NewApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if _, err := application.Run(ctx); err != nil {
		log.Fatalf("App run failed: %v", err)
	}
}
