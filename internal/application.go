package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/nxm-tictactoe/internal/config"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/entity"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/oracle"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/repository"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/nxm-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/nxm-tictactoe/transport/rest"
	"github.com/rocketscienceinc/nxm-tictactoe/transport/tui"
	"github.com/rocketscienceinc/nxm-tictactoe/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the HTTP and WebSocket servers until a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	gameManager, closeDeps, err := newGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeDeps()

	defaultDifficulty := entity.ParseDifficulty(conf.Oracle.DefaultDifficulty)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, defaultDifficulty)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunTUI - runs the terminal front end until the user quits.
func RunTUI(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "tui-app")

	ctx, cancel := signalContext(log)
	defer cancel()

	gameManager, closeDeps, err := newGameManager(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeDeps()

	defaults := tui.Defaults{Rows: conf.Board.MinRows, Cols: conf.Board.MinCols}

	return tui.New(ctx, logger, gameManager, defaults).Run()
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}

// newGameManager wires the oracle and the results storage. The returned func
// releases them.
func newGameManager(ctx context.Context, logger *slog.Logger, conf *config.Config) (*usecase.GameManager, func(), error) {
	log := logger.With("component", "app")

	rules, err := oracle.LoadRules(conf.Oracle.RulesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load oracle rules: %w", err)
	}

	moveOracle, err := oracle.NewProlog(logger, rules)
	if err != nil {
		return nil, nil, fmt.Errorf("could not start oracle: %w", err)
	}

	limits := usecase.Limits{
		MinRows: conf.Board.MinRows,
		MinCols: conf.Board.MinCols,
		MaxRows: conf.Board.MaxRows,
		MaxCols: conf.Board.MaxCols,
	}

	if !conf.Redis.Enabled {
		log.Info("Redis disabled, results are not kept")
		return usecase.NewGameManager(logger, moveOracle, repository.NopResults{}, limits), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	resultRepo := repository.NewResultRepository(redisStorage.Connection)

	return usecase.NewGameManager(logger, moveOracle, resultRepo, limits), closeStorage, nil
}
