package main

import (
	"context"
	"log"

	"github.com/feriahub/marketplace-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("marketplace orders API failed: %v", err)
	}
}
