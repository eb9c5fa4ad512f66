package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/logging"
	liftmcp "github.com/claude/liftlog/internal/mcp"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	baseURL := flag.String("url", "", "base URL of a running liftlog API; local storage is used when empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol
	log := slog.New(logging.NewHandler(os.Stderr, cfg.Log))

	var ds liftmcp.DataSource
	if *baseURL != "" {
		ds = liftmcp.NewHTTPClient(*baseURL)
		log.Info("mcp using remote API", "url", *baseURL)
	} else {
		a, err := app.New(context.Background(), cfg, log)
		if err != nil {
			log.Error("failed to open storage", "error", err)
			os.Exit(1)
		}
		defer a.Close()
		ds = liftmcp.NewLocal(a)
	}

	s := liftmcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
