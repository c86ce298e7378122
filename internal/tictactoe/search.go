package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	firstSideBest  = 1
	secondSideBest = -1
)

// ChooseBestMove - searches the whole game tree, plays the best move for the side on move
// and returns it with its minimax value. On a finished board nothing is played and ok is false.
func (that *Engine) ChooseBestMove() (pos entity.Position, score int, ok bool) {
	pos, score, ok = that.bestMove()
	if !ok {
		return entity.Position{}, 0, false
	}

	if err := that.board.ApplyMove(pos); err != nil {
		panic(fmt.Sprintf("search picked an illegal move %s: %v", pos, err))
	}

	return pos, score, true
}

// Score - minimax value of the current position: 1 when X wins with best play, -1 when O does, 0 for a draw.
func (that *Engine) Score() int {
	return that.minimax(that.board.FirstToMove())
}

func (that *Engine) bestMove() (entity.Position, int, bool) {
	if that.board.IsTerminal() {
		return entity.Position{}, 0, false
	}

	firstSide := that.board.FirstToMove()

	var (
		best      entity.Position
		bestScore int
		found     bool
	)

	for _, pos := range that.board.CandidateMoves() {
		var score int
		// after our move the opponent is on move, so the child is searched in their role
		that.withMove(pos, func() {
			score = that.minimax(!firstSide)
		})

		if !found || improves(firstSide, score, bestScore) {
			best, bestScore, found = pos, score, true
		}

		if (firstSide && score == firstSideBest) || (!firstSide && score == secondSideBest) {
			break
		}
	}

	return best, bestScore, found
}

func (that *Engine) minimax(maximize bool) int {
	if status := that.board.EvaluateStatus(); status != entity.InProgress {
		return status.Score()
	}

	best := secondSideBest
	if !maximize {
		best = firstSideBest
	}

	for _, pos := range that.board.CandidateMoves() {
		var score int
		that.withMove(pos, func() {
			score = that.minimax(!maximize)
		})

		if maximize {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

// withMove - applies pos for the duration of fn and always undoes it afterwards.
func (that *Engine) withMove(pos entity.Position, fn func()) {
	if err := that.board.ApplyMove(pos); err != nil {
		panic(fmt.Sprintf("search generated an illegal move %s: %v", pos, err))
	}
	defer that.board.UndoMove(pos)

	fn()
}

func improves(firstSide bool, score, best int) bool {
	if firstSide {
		return score > best
	}
	return score < best
}
