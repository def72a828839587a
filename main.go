package main

import (
	"flag"
	"fmt"
	"os"

	app "github.com/rocketscienceinc/nxm-tictactoe/internal"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/config"
)

// main - starts the game server: REST on http-port, game sessions on socket-port.
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
	logger := app.NewLogger(conf.LogLevel, os.Stdout)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}
