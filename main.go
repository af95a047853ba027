package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cliptranslate/config"
	"cliptranslate/platform"
	"cliptranslate/storage"
	"cliptranslate/systray"
	"cliptranslate/translate"
	"cliptranslate/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) > 1 {
		if done := runCommand(os.Args[1]); done {
			return
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	configPath, _ := config.ConfigPath()
	slog.Info("Configuration loaded", "path", configPath)

	// API key: environment variable wins, credential store otherwise.
	creds := platform.NewCredentials()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if key, err := creds.Load(); err == nil {
			apiKey = key
		}
	}
	if apiKey == "" {
		slog.Warn("No API key configured; translations will fail until one is set via the dashboard or GEMINI_API_KEY")
	}

	promptMode, err := translate.ParsePromptMode(cfg.Translation.PromptMode)
	if err != nil {
		slog.Error("Invalid prompt mode in config", "error", err)
		os.Exit(1)
	}

	client := translate.NewClient(apiKey, cfg.Translation.Model, promptMode)

	dir, err := config.Dir()
	if err != nil {
		slog.Error("Failed to resolve data directory", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(dir)
	if err != nil {
		slog.Error("Failed to open history database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var srv *web.Server
	if cfg.Web.Enabled {
		srv = web.NewServer(db, cfg, creds, client.ListModels)
		go func() {
			if err := srv.Start(); err != nil {
				slog.Error("Dashboard server stopped", "error", err)
			}
		}()
	}

	agent := NewAgent(cfg, client, db, srv)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agentErr := make(chan error, 1)
	go func() {
		agentErr <- agent.Run(ctx)
	}()

	tray := systray.NewManager(cfg.Web.Port, platform.NewStartup(), nil)

	go func() {
		select {
		case <-ctx.Done():
		case <-tray.WaitForQuit():
			cancel()
		case err := <-agentErr:
			if err != nil {
				slog.Error("Agent error", "error", err)
			}
			cancel()
		}
		tray.Stop()
	}()

	// Blocks until the tray exits.
	tray.Run()

	slog.Info("ClipTranslate stopped")
}

// runCommand handles one-shot command line flags. Returns true when the
// process should exit instead of starting the agent.
func runCommand(arg string) bool {
	switch arg {
	case "--install":
		if err := platform.NewStartup().Install(); err != nil {
			slog.Error("Failed to register for startup", "error", err)
			os.Exit(1)
		}
		slog.Info("Registered to start at login")
		return true
	case "--uninstall":
		if err := platform.NewStartup().Uninstall(); err != nil {
			slog.Error("Failed to remove startup registration", "error", err)
			os.Exit(1)
		}
		slog.Info("Startup registration removed")
		return true
	case "--help", "-h":
		fmt.Println("Usage: cliptranslate [--install | --uninstall]")
		fmt.Println()
		fmt.Println("  --install    register the agent to start at login")
		fmt.Println("  --uninstall  remove the startup registration")
		fmt.Println()
		fmt.Println("Run without arguments to start the agent.")
		return true
	default:
		fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
		os.Exit(2)
		return true
	}
}
