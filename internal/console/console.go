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

	"github.com/muesli/termenv"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/usecase"
)

const (
	msgWelcome      = "Welcome to Tic-Tac-Toe!"
	msgAskRow       = "Enter the row (1-3): "
	msgAskCol       = "Enter the column (1-3): "
	msgOutOfRange   = "Invalid input. Please enter numbers between 1 and 3."
	msgNotInteger   = "Invalid input. Please enter a valid integer."
	msgCellOccupied = "Invalid move. The selected cell is already occupied. Try again."
	msgAITurn       = "AI's turn..."
	msgHumanWins    = "You win!"
	msgAIWins       = "AI wins!"
	msgTie          = "It's a tie!"
)

type gameUseCase interface {
	NewGame(ctx context.Context, first entity.Mark) (*usecase.TurnResult, error)
	MakeTurn(ctx context.Context, game *entity.Game, cell entity.Cell) (*usecase.TurnResult, error)
}

// Options controls how the board is drawn and who opens.
type Options struct {
	Plain        bool
	XColor       string
	OColor       string
	AIMovesFirst bool
}

// Console runs one game between a human on in/out and the AI.
type Console struct {
	logger  *slog.Logger
	useCase gameUseCase

	in  *bufio.Scanner
	out *termenv.Output

	xStyle termenv.Style
	oStyle termenv.Style

	aiFirst bool
}

func New(logger *slog.Logger, useCase gameUseCase, in io.Reader, out io.Writer, opts Options) *Console {
	var output *termenv.Output
	if opts.Plain {
		output = termenv.NewOutput(out, termenv.WithProfile(termenv.Ascii))
	} else {
		output = termenv.NewOutput(out)
	}

	return &Console{
		logger:  logger.With("component", "console"),
		useCase: useCase,
		in:      bufio.NewScanner(in),
		out:     output,
		xStyle:  output.String().Foreground(output.Color(opts.XColor)).Bold(),
		oStyle:  output.String().Foreground(output.Color(opts.OColor)).Bold(),
		aiFirst: opts.AIMovesFirst,
	}
}

// Play runs the turn-taking loop until the game ends, the input is
// exhausted (io.EOF) or ctx is canceled.
func (that *Console) Play(ctx context.Context) error {
	log := that.logger.With("method", "Play")

	that.println(msgWelcome)

	first := entity.PlayerO
	if that.aiFirst {
		first = entity.PlayerX
		that.println(msgAITurn)
	}

	started, err := that.useCase.NewGame(ctx, first)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	game := started.Game
	log = log.With("gameID", game.ID)
	that.printBoard(game.Board)

	for {
		if err = ctx.Err(); err != nil {
			return fmt.Errorf("game interrupted: %w", err)
		}

		cell, err := that.readMove()
		if err != nil {
			return err
		}

		result, err := that.useCase.MakeTurn(ctx, game, cell)
		switch {
		case errors.Is(err, apperror.ErrCellOccupied):
			that.println(msgCellOccupied)
			continue
		case errors.Is(err, apperror.ErrGameFinished):
			that.printTurn(result)
			that.printOutcome(result.Game)
			log.Info("game over", "winner", result.Game.Winner.String(), "tie", result.Game.Tie)
			return nil
		case err != nil:
			that.println(fmt.Sprintf("An unexpected error occurred: %v", err))
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.printTurn(result)
	}
}

// readMove prompts until the human enters a row and column in range.
func (that *Console) readMove() (entity.Cell, error) {
	for {
		row, ok, err := that.readCoordinate(msgAskRow)
		if err != nil {
			return entity.Cell{}, err
		}
		if !ok {
			continue
		}

		col, ok, err := that.readCoordinate(msgAskCol)
		if err != nil {
			return entity.Cell{}, err
		}
		if !ok {
			continue
		}

		return entity.Cell{Row: row, Col: col}, nil
	}
}

func (that *Console) readCoordinate(prompt string) (int, bool, error) {
	that.print(prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return 0, false, fmt.Errorf("failed to read input: %w", err)
		}
		return 0, false, fmt.Errorf("failed to read input: %w", io.EOF)
	}

	value, err := strconv.Atoi(strings.TrimSpace(that.in.Text()))
	if err != nil {
		that.println(msgNotInteger)
		return 0, false, nil
	}

	if value < 1 || value > entity.BoardSize {
		that.println(msgOutOfRange)
		return 0, false, nil
	}

	return value, true, nil
}

// printTurn shows the board after the human move and, if the AI answered,
// after its move too.
func (that *Console) printTurn(result *usecase.TurnResult) {
	board := result.Game.Board
	if !result.BotMoved {
		that.printBoard(board)
		return
	}

	beforeBot := board
	beforeBot.Clear(result.BotMove.Row, result.BotMove.Col)
	that.printBoard(beforeBot)

	that.println(msgAITurn)
	that.printBoard(board)
}

func (that *Console) printOutcome(game *entity.Game) {
	switch {
	case game.Winner == entity.PlayerO:
		that.println(msgHumanWins)
	case game.Winner == entity.PlayerX:
		that.println(msgAIWins)
	default:
		that.println(msgTie)
	}
}

func (that *Console) printBoard(board entity.Board) {
	for _, row := range board {
		marks := make([]string, 0, entity.BoardSize)
		for _, mark := range row {
			marks = append(marks, that.styled(mark))
		}
		that.println(strings.Join(marks, "|"))
		that.println("-----")
	}
}

func (that *Console) styled(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return that.xStyle.Styled(mark.String())
	case entity.PlayerO:
		return that.oStyle.Styled(mark.String())
	default:
		return mark.String()
	}
}

func (that *Console) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *Console) println(text string) {
	that.print(text + "\n")
}
