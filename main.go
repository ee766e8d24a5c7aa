package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/dotvote/auth"
	"github.com/danielhkuo/dotvote/cliparse"
	"github.com/danielhkuo/dotvote/db"
	"github.com/danielhkuo/dotvote/middleware"
	"github.com/danielhkuo/dotvote/router"
	"github.com/danielhkuo/dotvote/seed"
	"github.com/danielhkuo/dotvote/store"
)

func main() {
	var err error

	args := os.Args[1:]
	printKey := len(args) > 0 && args[0] == "admin-key"
	if printKey {
		args = args[1:]
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if printKey {
		fmt.Println(auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt))
		return
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	st := store.New(dbConn, cfg.VoteTime)

	if cfg.SeedFile != "" {
		votes, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			slog.Error("seed load failed", "error", err, "file", cfg.SeedFile)
			os.Exit(1)
		}
		if err := seed.Apply(context.Background(), st, votes); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeded votes", "count", len(votes), "file", cfg.SeedFile)
	}

	// Create router
	mux := router.NewRouter(st, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "vote_time", cfg.VoteTime)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
