// Package main - Entry point for the pricing-truth HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricing-truth/adapters/httpapi"
	"pricing-truth/core/engine"
	"pricing-truth/core/extraction"
	"pricing-truth/internal/config"
	"pricing-truth/internal/logging"
)

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	cfgFile := flag.String("config", "", "Config file path")
	rulesFile := flag.String("rules", "", "HCL rules file path")
	flag.Parse()

	config.LoadEnv()
	if *cfgFile != "" {
		cfg, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}
	cfg := config.Get()
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	vocab := extraction.DefaultVocabulary()
	if *rulesFile != "" {
		if err := config.ApplyRulesFile(cfg, vocab, *rulesFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying rules file: %v\n", err)
			os.Exit(1)
		}
	}

	eng := engine.New(engine.Options{
		FXRates:    cfg.Pricing.FXRates,
		SeatCount:  cfg.Pricing.SeatCount,
		Vocabulary: vocab,
		Verdict:    cfg.Analysis,
	})

	apiCfg := httpapi.DefaultConfig()
	apiCfg.Address = *addr
	adapter := httpapi.New(eng, apiCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- adapter.Start()
	}()

	fmt.Printf("pricing-truth server listening on %s\n", *addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logging.Error("server error: " + err.Error())
			os.Exit(1)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := adapter.Shutdown(ctx); err != nil {
			logging.Error("shutdown error: " + err.Error())
		}
	}
}
