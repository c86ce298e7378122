package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrInputClosed  = errors.New("input closed")
	errInvalidInput = errors.New("not a number")
)

type inputLine struct {
	text string
	err  error
}

type gameManager interface {
	HumanMove(ctx context.Context, pos entity.Position) (entity.GameStatus, error)
	EngineMove(ctx context.Context) (entity.Position, entity.GameStatus, error)
	Status() entity.GameStatus
	IsFinished() bool
	Grid() [entity.BoardSize][entity.BoardSize]entity.Mark
}

// Shell is the line-oriented front end: it draws the board, reads the human's
// coordinates and reports the result. Coordinates are 1-based with y counted from the bottom.
type Shell struct {
	logger *slog.Logger

	in     *bufio.Scanner
	lines  chan inputLine
	out    io.Writer
	colors aurora.Aurora
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, color bool) *Shell {
	return &Shell{
		logger: logger.With("component", "console"),

		in:     bufio.NewScanner(in),
		out:    out,
		colors: aurora.NewAurora(color),
	}
}

// Play - runs the game to the end and returns its result. A shell plays a single game.
// Cancelling ctx ends the game even while a prompt is waiting for input.
func (that *Shell) Play(ctx context.Context, game gameManager, engineFirst bool) (entity.GameStatus, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	that.lines = make(chan inputLine)
	go that.readLines(ctx)

	that.printBoard(game.Grid())

	if engineFirst {
		if err := that.engineMove(ctx, game); err != nil {
			return game.Status(), err
		}
		that.printBoard(game.Grid())
	}

	for !game.IsFinished() {
		if err := that.humanMove(ctx, game); err != nil {
			return game.Status(), err
		}

		if !game.IsFinished() {
			if err := that.engineMove(ctx, game); err != nil {
				return game.Status(), err
			}
		}

		that.printBoard(game.Grid())
	}

	status := game.Status()
	that.printOutcome(status)

	return status, nil
}

// ToPosition - converts 1-based, bottom-left-origin coordinates into a board position.
// The result may be off the board; the board rejects it.
func ToPosition(x, y int) entity.Position {
	return entity.Position{Column: x - 1, Row: entity.BoardSize - y}
}

// FromPosition - inverse of ToPosition.
func FromPosition(pos entity.Position) (int, int) {
	return pos.Column + 1, entity.BoardSize - pos.Row
}

func (that *Shell) humanMove(ctx context.Context, game gameManager) error {
	for {
		pos, err := that.readPosition(ctx)
		if errors.Is(err, errInvalidInput) {
			that.println("Invalid board position, try again")
			continue
		}
		if err != nil {
			return err
		}

		_, err = game.HumanMove(ctx, pos)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperror.ErrIllegalMove):
			that.logger.Debug("Rejected human move", "position", pos.String(), "error", err)
			that.println("Invalid board position, try again")
		default:
			return fmt.Errorf("failed to play human move: %w", err)
		}
	}
}

func (that *Shell) engineMove(ctx context.Context, game gameManager) error {
	pos, _, err := game.EngineMove(ctx)
	if errors.Is(err, apperror.ErrGameFinished) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to play engine move: %w", err)
	}

	x, y := FromPosition(pos)
	that.println(fmt.Sprintf("Computer plays %d %d", x, y))

	return nil
}

func (that *Shell) readPosition(ctx context.Context) (entity.Position, error) {
	x, err := that.readNumber(ctx, "Enter an x position for your move: ")
	if err != nil {
		return entity.Position{}, err
	}

	y, err := that.readNumber(ctx, "Enter a y position for your move: ")
	if err != nil {
		return entity.Position{}, err
	}

	return ToPosition(x, y), nil
}

func (that *Shell) readNumber(ctx context.Context, prompt string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("input aborted: %w", err)
	}

	fmt.Fprint(that.out, prompt)

	var line inputLine

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("input aborted: %w", ctx.Err())
	case next, ok := <-that.lines:
		if !ok {
			return 0, ErrInputClosed
		}
		line = next
	}

	if line.err != nil {
		return 0, fmt.Errorf("failed to read input: %w", line.err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(line.text))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInvalidInput, err)
	}

	return value, nil
}

// readLines - feeds scanned lines to readNumber until the input ends or ctx is done.
// A Scan blocked on input keeps running after ctx ends until the reader returns.
func (that *Shell) readLines(ctx context.Context) {
	defer close(that.lines)

	for that.in.Scan() {
		select {
		case that.lines <- inputLine{text: that.in.Text()}:
		case <-ctx.Done():
			return
		}
	}

	if err := that.in.Err(); err != nil {
		select {
		case that.lines <- inputLine{err: err}:
		case <-ctx.Done():
		}
	}
}

func (that *Shell) printBoard(grid [entity.BoardSize][entity.BoardSize]entity.Mark) {
	var sb strings.Builder

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			sb.WriteString(that.cell(grid[row][col]))
			if col != entity.BoardSize-1 {
				sb.WriteString(" | ")
			}
		}
		sb.WriteString("\n")

		if row != entity.BoardSize-1 {
			sb.WriteString("---------\n")
		}
	}

	fmt.Fprint(that.out, sb.String())
}

func (that *Shell) cell(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return that.colors.Red(string(mark)).String()
	case entity.PlayerO:
		return that.colors.Blue(string(mark)).String()
	case entity.EmptyCell:
		return " "
	}
	return "?"
}

func (that *Shell) printOutcome(status entity.GameStatus) {
	switch status {
	case entity.FirstWins:
		that.println(that.colors.Bold("X wins").String())
	case entity.SecondWins:
		that.println(that.colors.Bold("O wins").String())
	case entity.Draw:
		that.println(that.colors.Bold("Cat's game").String())
	case entity.InProgress:
	}
}

func (that *Shell) println(line string) {
	fmt.Fprintln(that.out, line)
}
