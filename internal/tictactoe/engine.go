package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Engine owns a single board and plays the side on move optimally.
// It is not safe for concurrent use: the search mutates the board in place.
type Engine struct {
	board *entity.Board
}

func NewEngine(board *entity.Board) *Engine {
	if board == nil {
		board = entity.NewBoard()
	}

	return &Engine{board: board}
}

// ApplyMove - places the mark of the side on move. Fails with apperror.ErrIllegalMove.
func (that *Engine) ApplyMove(pos entity.Position) error {
	return that.board.ApplyMove(pos)
}

func (that *Engine) UndoMove(pos entity.Position) {
	that.board.UndoMove(pos)
}

func (that *Engine) CandidateMoves() []entity.Position {
	return that.board.CandidateMoves()
}

func (that *Engine) EvaluateStatus() entity.GameStatus {
	return that.board.EvaluateStatus()
}

func (that *Engine) IsTerminal() bool {
	return that.board.IsTerminal()
}

func (that *Engine) Grid() [entity.BoardSize][entity.BoardSize]entity.Mark {
	return that.board.Grid()
}

func (that *Engine) Turn() entity.Mark {
	return that.board.Turn()
}

// Key - encoding of the current position, see entity.Board.Key.
func (that *Engine) Key() string {
	return that.board.Key()
}
