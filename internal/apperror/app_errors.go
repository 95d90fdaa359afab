package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrNoAvailableMoves = errors.New("no available moves")
)
