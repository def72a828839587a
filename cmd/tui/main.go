package main

import (
	"flag"
	"fmt"
	"os"

	app "github.com/rocketscienceinc/nxm-tictactoe/internal"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/config"
)

// main - runs the game in the terminal. Logs go to a file since the screen belongs to the UI.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "config.yml", "path to the yaml config")
	flag.Parse()

	conf := config.MustLoad(*configPath)

	logFile, err := os.OpenFile(conf.TUI.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}
	defer logFile.Close()

	if err = app.RunTUI(app.NewLogger(conf.LogLevel, logFile), conf); err != nil {
		panic(fmt.Errorf("tui run failed: %w", err))
	}
}
