/*
main.go - Application entry point

PURPOSE:
  Runs the salary ticker headless: the once-per-second loop, the tray state
  it drives, notifications, and the HTTP API that a menubar frontend talks to.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Open the settings and recovery stores
  3. Wire the sinks: tray, stream broadcaster, notification watcher
  4. Start the ticker
  5. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default: 8080)
  -data     Data directory (default: ./data)
  -backend  file, sqlite or memory (default: file)
  -db       SQLite database path (default: <data>/salary-ticker.db)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the ticker and the tray animation
  4. Drain pending notifications
  5. Close the stores

EXAMPLES:
  # Run with JSON files in ./data
  ./server

  # Run against SQLite
  ./server -backend=sqlite -db="./data/salary-ticker.db"

SEE ALSO:
  - config/config.go: Configuration sources
  - api/server.go: Router configuration
  - ticker/ticker.go: The loop
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/salary-ticker/api"
	"github.com/warp/salary-ticker/config"
	"github.com/warp/salary-ticker/notify"
	"github.com/warp/salary-ticker/ticker"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	stores, err := cfg.OpenStores()
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Backend, err)
	}
	defer stores.Close()

	// Notifications
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, false)
		if err != nil {
			log.Printf("Warning: Telegram disabled: %v", err)
		} else {
			notifier = tg
		}
	}
	watcher := notify.NewWatcher(notifier)
	watcher.Start()
	defer watcher.Close()

	// Ticker and its sinks
	signals := ticker.NewSignals()
	handler := api.NewHandler(stores.Settings, stores.Recovery, signals)
	tray := ticker.NewTraySink()
	defer tray.Close()

	tk := ticker.NewTicker(stores.Settings, handler.Overrides,
		ticker.MultiSink{tray, handler.Broadcaster, watcher}, signals)
	tk.OnSettings = tray.ApplySettings
	handler.Ticker = tk
	handler.Tray = tray

	tk.Start()
	defer tk.Stop()

	router := api.NewRouter(handler)

	// Cancelling baseCtx ends open event streams on shutdown.
	baseCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()

	// WriteTimeout stays unset: /api/tick/stream is long-lived.
	server := &http.Server{
		Addr:        fmt.Sprintf("localhost:%d", cfg.Port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d (backend: %s, data: %s)", cfg.Port, cfg.Backend, cfg.DataDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopStreams()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
