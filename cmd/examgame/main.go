package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"examgame/internal/config"
	"examgame/internal/storage"
	"examgame/internal/sync"
	"examgame/internal/web"
)

func main() {
	// 1. Define and parse command-line flags
	flags := pflag.NewFlagSet("examgame", pflag.ExitOnError)
	flags.String("config", "", "Path to a YAML config file")
	flags.String("addr", ":5000", "Address to listen on")
	flags.String("db", "examgame.db", "Path to the SQLite database file")
	flags.String("repos-dir", "repos", "Directory git sources are cloned into")
	flags.StringSlice("source", nil, "Question document source (directory or git URL), repeatable")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Open the database
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	slog.Info("Database opened", "path", cfg.DBPath)

	// 3. Register configured sources and run an initial sync
	for _, source := range cfg.Sources {
		if _, err := db.AddSource(source, web.DetectSourceType(source)); err != nil {
			log.Fatalf("Failed to register source %s: %v", source, err)
		}
	}
	if len(cfg.Sources) > 0 {
		if err := sync.Run(db, cfg.ReposDir); err != nil {
			log.Fatalf("Initial sync failed: %v", err)
		}
	}

	// 4. Serve the API
	slog.Info("Listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, web.NewServer(db, cfg.ReposDir)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
