package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gameEngine interface {
	ApplyMove(pos entity.Position) error
	ChooseBestMove() (entity.Position, int, bool)
	EvaluateStatus() entity.GameStatus
	IsTerminal() bool
	Grid() [entity.BoardSize][entity.BoardSize]entity.Mark
	Turn() entity.Mark
	Key() string
}

type moveBook interface {
	Lookup(ctx context.Context, boardKey string) (entity.Position, bool, error)
	Store(ctx context.Context, boardKey string, pos entity.Position) error
}

// GameManager runs one game between a human and the engine.
// The book is optional; without it every engine move is searched.
type GameManager struct {
	logger *slog.Logger
	engine gameEngine
	book   moveBook
}

func NewGameManager(logger *slog.Logger, engine gameEngine, book moveBook) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		engine: engine,
		book:   book,
	}
}

// HumanMove - plays pos for the side on move. An occupied or off-board cell yields apperror.ErrIllegalMove.
func (that *GameManager) HumanMove(ctx context.Context, pos entity.Position) (entity.GameStatus, error) {
	if err := ctx.Err(); err != nil {
		return that.engine.EvaluateStatus(), fmt.Errorf("human move aborted: %w", err)
	}

	if that.engine.IsTerminal() {
		return that.engine.EvaluateStatus(), apperror.ErrGameFinished
	}

	if err := that.engine.ApplyMove(pos); err != nil {
		return that.engine.EvaluateStatus(), fmt.Errorf("failed make turn: %w", err)
	}

	status := that.engine.EvaluateStatus()
	that.logger.Debug("Human moved", "position", pos.String(), "status", status.String())

	return status, nil
}

// EngineMove - plays the engine's reply, from the book when it has a usable entry and by search otherwise.
func (that *GameManager) EngineMove(ctx context.Context) (entity.Position, entity.GameStatus, error) {
	if err := ctx.Err(); err != nil {
		return entity.Position{}, that.engine.EvaluateStatus(), fmt.Errorf("engine move aborted: %w", err)
	}

	if that.engine.IsTerminal() {
		return entity.Position{}, that.engine.EvaluateStatus(), apperror.ErrGameFinished
	}

	key := that.engine.Key()

	if pos, ok := that.lookupBook(ctx, key); ok {
		if err := that.engine.ApplyMove(pos); err == nil {
			status := that.engine.EvaluateStatus()
			that.logger.Info("Engine moved from book", "position", pos.String(), "status", status.String())

			return pos, status, nil
		}

		that.logger.Warn("Ignoring unusable book entry", "board", key, "position", pos.String())
	}

	pos, score, ok := that.engine.ChooseBestMove()
	if !ok {
		return entity.Position{}, that.engine.EvaluateStatus(), apperror.ErrGameFinished
	}

	status := that.engine.EvaluateStatus()
	that.logger.Info("Engine moved", "position", pos.String(), "score", score, "status", status.String())

	that.storeBook(ctx, key, pos)

	return pos, status, nil
}

func (that *GameManager) Status() entity.GameStatus {
	return that.engine.EvaluateStatus()
}

func (that *GameManager) IsFinished() bool {
	return that.engine.IsTerminal()
}

func (that *GameManager) Grid() [entity.BoardSize][entity.BoardSize]entity.Mark {
	return that.engine.Grid()
}

func (that *GameManager) Turn() entity.Mark {
	return that.engine.Turn()
}

func (that *GameManager) lookupBook(ctx context.Context, key string) (entity.Position, bool) {
	if that.book == nil {
		return entity.Position{}, false
	}

	pos, ok, err := that.book.Lookup(ctx, key)
	if err != nil {
		that.logger.Error("could not read move book", "board", key, "error", err)
		return entity.Position{}, false
	}

	return pos, ok
}

func (that *GameManager) storeBook(ctx context.Context, key string, pos entity.Position) {
	if that.book == nil {
		return
	}

	if err := that.book.Store(ctx, key, pos); err != nil {
		that.logger.Error("could not write move book", "board", key, "error", err)
	}
}
