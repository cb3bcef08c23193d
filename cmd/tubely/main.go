package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hbomb79/Tubely/internal"
	"github.com/hbomb79/Tubely/pkg/logger"
)

var log = logger.Get("Main")

// main is the entry point to Tubely. Configuration is loaded from
// the optional YAML file and the environment before all services
// are started. Tubely runs until it receives SIGINT or SIGTERM.
func main() {
	configPath := flag.String("config", os.Getenv("TUBELY_CONFIG"), "path to a YAML configuration file (optional)")
	flag.Parse()

	config, err := internal.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(config.LogLevel)
	if err != nil {
		log.Warnf("%v, defaulting to info\n", err)
	}
	logger.SetMinLoggingLevel(level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tubely, err := internal.New(ctx, *config)
	if err != nil {
		log.Fatalf("Failed to initialise Tubely: %v\n", err)
		os.Exit(1)
	}

	if err := tubely.Run(ctx); err != nil {
		log.Fatalf("Tubely stopped unexpectedly: %v\n", err)
		os.Exit(1)
	}
}
