// Command tui shows the salary ticker as a terminal menubar.
package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/warp/salary-ticker/config"
	"github.com/warp/salary-ticker/recovery"
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

	// The ticker logs through the standard logger; keep it off the screen.
	logFile, err := tea.LogToFile("salary-ticker-tui.log", "ticker")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	signals := ticker.NewSignals()
	overrides := recovery.NewOverrides(stores.Recovery)

	p := tea.NewProgram(newModel(overrides, signals), tea.WithAltScreen())
	sink := teaSink{send: p.Send}

	tray := ticker.NewTraySink()
	tray.OnFrame(func(f ticker.Frame) { p.Send(frameMsg(f)) })

	tk := ticker.NewTicker(stores.Settings, overrides, ticker.MultiSink{sink, tray}, signals)
	tk.OnSettings = tray.ApplySettings
	tk.Start()

	if _, err := p.Run(); err != nil {
		log.Printf("TUI failed: %v", err)
	}

	tk.Stop()
	tray.Close()
}
