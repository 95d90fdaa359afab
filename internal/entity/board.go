package entity

import (
	"fmt"
	"strings"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
)

// BoardSize is the side length of the grid. Coordinates are 1..BoardSize.
const BoardSize = 3

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	// PlayerX is the maximizing side, played by the AI.
	PlayerX
	// PlayerO is the minimizing side, played by the human.
	PlayerO
)

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// ParseMark converts the wire form of a mark.
func ParseMark(value string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	case "", "-", "_":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}
}

// Cell is a 1-based (row, column) coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) Valid() bool {
	return that.Row >= 1 && that.Row <= BoardSize && that.Col >= 1 && that.Col <= BoardSize
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// winLines lists the 0-based (row, col) triples of every winning line.
var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid. It is a plain value: copying it copies the game.
type Board [BoardSize][BoardSize]Mark

func NewBoard() Board {
	return Board{}
}

// ParseBoard builds a board from nine marks in row-major order.
func ParseBoard(cells []string) (Board, error) {
	board := NewBoard()

	if len(cells) != BoardSize*BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, BoardSize*BoardSize, len(cells))
	}

	for i, value := range cells {
		mark, err := ParseMark(value)
		if err != nil {
			return NewBoard(), fmt.Errorf("cell %d: %w", i, err)
		}
		board[i/BoardSize][i%BoardSize] = mark
	}

	return board, nil
}

// Cells returns the board in row-major order, empty cells as "".
func (that Board) Cells() []string {
	cells := make([]string, 0, BoardSize*BoardSize)
	for _, row := range that {
		for _, mark := range row {
			if mark == Empty {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, mark.String())
		}
	}
	return cells
}

func (that *Board) At(row, col int) Mark {
	if !(Cell{Row: row, Col: col}).Valid() {
		return Empty
	}
	return that[row-1][col-1]
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, mark := range row {
			if mark == Empty {
				return false
			}
		}
	}
	return true
}

// IsWinner reports whether mark occupies any full row, column or diagonal.
func (that *Board) IsWinner(mark Mark) bool {
	if mark == Empty {
		return false
	}

	for _, line := range winLines {
		if that[line[0][0]][line[0][1]] == mark &&
			that[line[1][0]][line[1][1]] == mark &&
			that[line[2][0]][line[2][1]] == mark {
			return true
		}
	}

	return false
}

// EmptyCells lists the free cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == Empty {
				cells = append(cells, Cell{Row: row + 1, Col: col + 1})
			}
		}
	}
	return cells
}

// Place puts mark on an empty cell. It reports false and leaves the board
// untouched when the cell is taken or outside the grid.
func (that *Board) Place(row, col int, mark Mark) bool {
	if mark == Empty || !(Cell{Row: row, Col: col}).Valid() {
		return false
	}

	if that[row-1][col-1] != Empty {
		return false
	}

	that[row-1][col-1] = mark

	return true
}

// Clear resets a cell to Empty.
func (that *Board) Clear(row, col int) {
	if !(Cell{Row: row, Col: col}).Valid() {
		return
	}
	that[row-1][col-1] = Empty
}

func (that Board) String() string {
	var sb strings.Builder
	for _, row := range that {
		marks := make([]string, 0, BoardSize)
		for _, mark := range row {
			marks = append(marks, mark.String())
		}
		sb.WriteString(strings.Join(marks, "|"))
		sb.WriteString("\n-----\n")
	}
	return sb.String()
}
