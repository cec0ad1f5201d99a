package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/librarium/backend/internal/config"
	"github.com/JonnyWalker81/librarium/backend/internal/logger"
	"github.com/JonnyWalker81/librarium/backend/internal/repository"
	"github.com/JonnyWalker81/librarium/backend/internal/schema"
	"github.com/JonnyWalker81/librarium/backend/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(cfg.LoggerConfig())
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting librarium API server", logger.String("env", cfg.Server.Env))

	// A contract that fails to load is fatal when validation is enabled.
	var contract *schema.Contract
	if cfg.Validation.Enabled {
		contract, err = server.LoadContract(ctx, cfg.Validation.Contract)
		if err != nil {
			return err
		}
		log.Info("api contract loaded",
			logger.String("source", contract.Source()),
			logger.String("title", contract.Title()),
			logger.String("version", contract.Version()),
			logger.Int("operations", contract.Operations()),
			logger.Strings("whitelist", cfg.Validation.Whitelist),
		)
	} else {
		log.Warn("request validation is disabled")
	}

	deps, authorRepo, bookRepo := server.NewDeps(log, contract)

	if cfg.AutoLoad.Enabled {
		fixtures := repository.Fixtures{Authors: cfg.AutoLoad.Authors, Books: cfg.AutoLoad.Books}
		if err := repository.AutoLoad(ctx, fixtures, authorRepo, bookRepo); err != nil {
			return fmt.Errorf("failed to auto-load fixtures: %w", err)
		}
	}

	router, err := server.NewRouter(ctx, cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	if err := server.New(cfg, router).Run(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
