package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

func newShell(input string) (*Shell, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, strings.NewReader(input), out, false), out
}

func newGame() *usecase.GameManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return usecase.NewGameManager(logger, tictactoe.NewEngine(nil), nil)
}

func TestToPosition(t *testing.T) {
	t.Run("Bottom-left origin maps to the last row", func(t *testing.T) {
		assert.Equal(t, entity.Position{Column: 0, Row: 2}, ToPosition(1, 1))
		assert.Equal(t, entity.Position{Column: 2, Row: 0}, ToPosition(3, 3))
		assert.Equal(t, entity.Position{Column: 1, Row: 1}, ToPosition(2, 2))
	})

	t.Run("Out of range input stays off the board", func(t *testing.T) {
		assert.False(t, ToPosition(0, 1).InBounds())
		assert.False(t, ToPosition(1, 4).InBounds())
	})

	t.Run("FromPosition is the inverse", func(t *testing.T) {
		for _, pos := range entity.NewBoard().CandidateMoves() {
			x, y := FromPosition(pos)
			assert.Equal(t, pos, ToPosition(x, y))
		}
	})
}

func TestShell_printBoard(t *testing.T) {
	// Given: X in the top-left corner and O in the centre
	shell, out := newShell("")
	grid := [entity.BoardSize][entity.BoardSize]entity.Mark{}
	grid[0][0] = entity.PlayerX
	grid[1][1] = entity.PlayerO

	// When: the board is printed without colours
	shell.printBoard(grid)

	// Then: rows are separated by dashes
	expected := "X |   |  \n" +
		"---------\n" +
		"  | O |  \n" +
		"---------\n" +
		"  |   |  \n"
	assert.Equal(t, expected, out.String())
}

func TestShell_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Re-prompts on bad input and reports the engine's win", func(t *testing.T) {
		// Given: a human who types garbage, repeats a cell and leaves the board once
		input := strings.Join([]string{
			"abc",
			"2", "2",
			"2", "2",
			"9", "1",
			"2", "3",
			"3", "3",
			"1", "2",
		}, "\n") + "\n"
		shell, out := newShell(input)

		// When: the game is played
		status, err := shell.Play(ctx, newGame(), false)

		// Then: every bad attempt is rejected and O wins on the bottom row
		require.NoError(t, err)
		assert.Equal(t, entity.SecondWins, status)
		assert.Equal(t, 3, strings.Count(out.String(), "Invalid board position, try again"))
		assert.Contains(t, out.String(), "Computer plays 1 3")
		assert.True(t, strings.HasSuffix(out.String(), "O wins\n"))
	})

	t.Run("Engine can move first", func(t *testing.T) {
		// Given: the engine opens as X
		shell, out := newShell("2\n3\n3\n3\n3\n2\n")

		// When: the game is played
		status, err := shell.Play(ctx, newGame(), true)

		// Then: the engine takes the top-left corner first and wins down the left column
		require.NoError(t, err)
		assert.Equal(t, entity.FirstWins, status)
		assert.Contains(t, out.String(), "Computer plays 1 3")
		assert.True(t, strings.HasSuffix(out.String(), "X wins\n"))
	})

	t.Run("Stops when the input closes", func(t *testing.T) {
		// Given: a human who hangs up after one move
		shell, _ := newShell("2\n2\n")

		// When: the game is played
		status, err := shell.Play(ctx, newGame(), false)

		// Then: the shell gives up with ErrInputClosed
		require.ErrorIs(t, err, ErrInputClosed)
		assert.Equal(t, entity.InProgress, status)
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		shell, _ := newShell("2\n2\n")
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := shell.Play(cancelled, newGame(), false)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Stops when the context is cancelled while waiting for input", func(t *testing.T) {
		// Given: a human who never types anything
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})

		out := &bytes.Buffer{}
		shell := New(slog.New(slog.NewTextHandler(io.Discard, nil)), reader, out, false)
		waiting, cancel := context.WithCancel(ctx)

		done := make(chan error, 1)
		go func() {
			_, err := shell.Play(waiting, newGame(), false)
			done <- err
		}()

		// When: the context is cancelled while the prompt is blocked
		time.Sleep(100 * time.Millisecond)
		cancel()

		// Then: Play returns promptly with the cancellation
		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("Play did not return after the context was cancelled")
		}
	})
}
