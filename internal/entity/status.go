package entity

type GameStatus int

const (
	InProgress GameStatus = iota
	FirstWins
	SecondWins
	Draw
)

func (that GameStatus) String() string {
	switch that {
	case InProgress:
		return "in progress"
	case FirstWins:
		return "X wins"
	case SecondWins:
		return "O wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// Score - terminal value from the first side's point of view.
func (that GameStatus) Score() int {
	switch that {
	case FirstWins:
		return 1
	case SecondWins:
		return -1
	case Draw, InProgress:
		return 0
	}
	return 0
}
