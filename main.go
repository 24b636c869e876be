package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"project_timer/internal"
	"project_timer/internal/applog"
	"project_timer/internal/config"
	"project_timer/internal/project"
	"project_timer/internal/timelog"
)

const configFile = "project_timer.yaml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup so the final save and log still happen
// when the program exits with an error.
func run() error {
	cfg, err := config.LoadOrCreate(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default config: %v\n", err)
	}

	// A logger or session db that won't open is not fatal; the timer must
	// stay usable without them.
	var logger applog.Logger = applog.NoopLogger{}
	fileLogger, err := applog.NewFileLogger(cfg.EventLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: event log disabled: %v\n", err)
	} else {
		logger = fileLogger
		defer fileLogger.Close()
	}

	sessions, err := timelog.NewRepository(cfg.SessionDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: session history disabled: %v\n", err)
		sessions = nil
	}

	store := project.NewStore(cfg.DataFile)
	m := internal.NewModel(cfg, store, sessions, logger)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			p.Send(internal.MsgTick{})
		}
	}()

	_, err = p.Run()
	return err
}
