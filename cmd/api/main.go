package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/sitecheckhq/sitecheck/internal/config"
	"github.com/sitecheckhq/sitecheck/internal/db"
	"github.com/sitecheckhq/sitecheck/internal/generator"
	"github.com/sitecheckhq/sitecheck/internal/scheduler"
)

func main() {
	cfg := config.Load()

	if cfg.LogFormat == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	if cfg.Env == "prod" && (cfg.JWTSecret == "" || cfg.JWTSecret == "supersecretkey") {
		log.Fatal("JWT_SECRET must be set in prod")
	}

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Migrate(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Background generation pass; the API's /generate endpoints share the
	// same service, so manual and scheduled runs behave identically.
	gen := generator.New(database, cfg.LookaheadDays)
	go func() {
		if err := scheduler.Run(gen, cfg.GenerateCron); err != nil {
			log.Fatalf("Failed to start generation scheduler: %v", err)
		}
	}()

	r := newRouter(database, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}
