package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const BoardSize = 3

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

var (
	ErrInvalidBoard = errors.New("invalid board")

	// WinLines is scanned in order: rows, columns, diagonals.
	WinLines = [8][3]Position{
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{2, 0}, {1, 1}, {0, 2}},
	}
)

// Position addresses a cell by column and row, both zero-based from the top-left corner.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

func (that Position) InBounds() bool {
	return that.Column >= 0 && that.Column < BoardSize && that.Row >= 0 && that.Row < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d, %d)", that.Column, that.Row)
}

// Board is the 3x3 grid together with the side to move. X always moves first.
// Cells change only through ApplyMove and UndoMove.
type Board struct {
	cells [BoardSize][BoardSize]Mark
	xTurn bool
}

func NewBoard() *Board {
	return &Board{xTurn: true}
}

// NewBoardFromRows - builds a board from a literal grid and derives the side to move from mark parity.
func NewBoardFromRows(rows [BoardSize][BoardSize]Mark) (*Board, error) {
	var xCount, oCount int

	for _, row := range rows {
		for _, cell := range row {
			switch cell {
			case PlayerX:
				xCount++
			case PlayerO:
				oCount++
			case EmptyCell:
			default:
				return nil, fmt.Errorf("%w: unknown mark %q", ErrInvalidBoard, cell)
			}
		}
	}

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return nil, fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidBoard, xCount, oCount)
	}

	return &Board{cells: rows, xTurn: xCount == oCount}, nil
}

// FirstToMove - reports whether the first side (X) places the next mark.
func (that *Board) FirstToMove() bool {
	return that.xTurn
}

// Turn - returns the mark placed by the next move.
func (that *Board) Turn() Mark {
	if that.xTurn {
		return PlayerX
	}
	return PlayerO
}

func (that *Board) At(pos Position) Mark {
	return that.cells[pos.Row][pos.Column]
}

// Grid - returns a copy of the cells for rendering.
func (that *Board) Grid() [BoardSize][BoardSize]Mark {
	return that.cells
}

// ApplyMove - places the mover's mark on pos and passes the turn.
// The board is left untouched when the move is illegal.
func (that *Board) ApplyMove(pos Position) error {
	if !pos.InBounds() {
		return fmt.Errorf("%w: position %s is off the board", apperror.ErrIllegalMove, pos)
	}

	if that.At(pos) != EmptyCell {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrIllegalMove, pos)
	}

	that.cells[pos.Row][pos.Column] = that.Turn()
	that.xTurn = !that.xTurn

	return nil
}

// UndoMove - reverts a move previously made with ApplyMove. The caller owns the pairing.
func (that *Board) UndoMove(pos Position) {
	that.cells[pos.Row][pos.Column] = EmptyCell
	that.xTurn = !that.xTurn
}

// CandidateMoves - returns every empty cell in row-major order.
func (that *Board) CandidateMoves() []Position {
	moves := make([]Position, 0, BoardSize*BoardSize)

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that.cells[row][col] == EmptyCell {
				moves = append(moves, Position{Column: col, Row: row})
			}
		}
	}

	return moves
}

func (that *Board) EvaluateStatus() GameStatus {
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != EmptyCell && a == b && b == c {
			return winnerStatus(a)
		}
	}

	// the game will continue until all the squares are full
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return InProgress
			}
		}
	}

	return Draw
}

func (that *Board) IsTerminal() bool {
	return that.EvaluateStatus() != InProgress
}

// Key - encodes the grid row by row, one character per cell.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize * BoardSize)

	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}

	return sb.String()
}

func winnerStatus(mark Mark) GameStatus {
	if mark == PlayerX {
		return FirstWins
	}
	return SecondWins
}
