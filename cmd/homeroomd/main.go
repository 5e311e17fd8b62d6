package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/campuskit/homeroom/internal/school/app"
)

func main() {
	// Load ./.env when present. A workstation install keeps its store
	// address and admin seed there instead of in the service manager unit.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize daemon: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("daemon error: %v", err)
	}
}
