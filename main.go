package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		Logger.Infof("loaded environment from .env")
	}

	config, err := LoadConfig()
	if err != nil {
		Logger.Fatalf("invalid configuration: %v", err)
	}

	suites, err := DefaultSuites(&config)
	if err != nil {
		Logger.Fatalf("failed to build benchmark catalog: %v", err)
	}
	registry, err := NewRegistry(suites)
	if err != nil {
		Logger.Fatalf("invalid benchmark catalog: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	system := NewSystem(config, registry)
	if err := system.Run(ctx); err != nil {
		Logger.Fatalf("benchmark failed: %v", err)
	}
	Logger.Infof("benchmark finished")
}
