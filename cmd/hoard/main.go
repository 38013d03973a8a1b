package main

import (
	"log"

	"github.com/hoardapp/hoard/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ hoard failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ hoard failed: %v", err)
	}
}
