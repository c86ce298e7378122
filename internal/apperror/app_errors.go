package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameFinished = errors.New("game is already finished")
)
