package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
)

// RunApp - runs one game on stdin/stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "component", "app", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires the engine, the optional move book and the console shell, then plays until the game ends.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	var book repository.MoveBook

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		book = repository.NewMoveBook(redisStorage)
		log.Info("Move book enabled", "addr", redisAddrString)
	}

	engine := tictactoe.NewEngine(nil)
	gameManager := usecase.NewGameManager(logger, engine, book)
	shell := console.New(logger, in, out, conf.UseColor())

	log.Info("Starting game", "first_player", conf.FirstPlayer)

	status, err := shell.Play(ctx, gameManager, conf.EngineFirst())
	if errors.Is(err, context.Canceled) {
		log.Info("Game interrupted", "result", status.String())
		return nil
	}
	if err != nil {
		return fmt.Errorf("game aborted: %w", err)
	}

	log.Info("Game finished", "result", status.String())

	return nil
}
