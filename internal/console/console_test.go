package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/service"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/tictactoe"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/usecase"
)

// scriptedUseCase answers every human move with the next scripted bot move.
type scriptedUseCase struct {
	botMoves []entity.Cell
}

func (that *scriptedUseCase) NewGame(_ context.Context, first entity.Mark) (*usecase.TurnResult, error) {
	return &usecase.TurnResult{Game: entity.NewGame("scripted", first)}, nil
}

func (that *scriptedUseCase) MakeTurn(_ context.Context, game *entity.Game, cell entity.Cell) (*usecase.TurnResult, error) {
	if err := game.MakeTurn(entity.PlayerO, cell); err != nil {
		return nil, err
	}

	result := &usecase.TurnResult{Game: game}
	if game.IsFinished() {
		return result, apperror.ErrGameFinished
	}

	move := that.botMoves[0]
	that.botMoves = that.botMoves[1:]
	if err := game.MakeTurn(entity.PlayerX, move); err != nil {
		return nil, err
	}
	result.BotMove, result.BotMoved = move, true

	if game.IsFinished() {
		return result, apperror.ErrGameFinished
	}

	return result, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func lines(values ...string) io.Reader {
	return strings.NewReader(strings.Join(values, "\n") + "\n")
}

func TestConsole_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Human wins along the top row", func(t *testing.T) {
		// Given: a bot that answers on the middle row
		useCase := &scriptedUseCase{botMoves: []entity.Cell{{Row: 2, Col: 1}, {Row: 2, Col: 2}}}
		var out bytes.Buffer
		game := New(discardLogger(), useCase, lines("1", "1", "1", "2", "1", "3"), &out, Options{Plain: true})

		// When: the human plays the top row
		err := game.Play(ctx)

		// Then: the game ends with the human's win
		require.NoError(t, err)
		output := out.String()
		assert.True(t, strings.HasPrefix(output, msgWelcome+"\n"))
		assert.Equal(t, 2, strings.Count(output, msgAITurn))
		assert.Contains(t, output, "O|O|O\n-----\nX|X| \n-----\n | | \n-----\n")
		assert.True(t, strings.HasSuffix(output, msgHumanWins+"\n"))
	})

	t.Run("Invalid input is reported and retried", func(t *testing.T) {
		// Given: junk input, an out of range row, a good move, a repeated cell
		useCase := &scriptedUseCase{botMoves: []entity.Cell{{Row: 2, Col: 2}}}
		var out bytes.Buffer
		game := New(discardLogger(), useCase, lines("abc", "5", "1", "x", "1", "1", "0", "1", "1"), &out, Options{Plain: true})

		// When: input runs out
		err := game.Play(ctx)

		// Then: every problem got its message and the loop stopped on EOF
		require.ErrorIs(t, err, io.EOF)
		output := out.String()
		assert.Equal(t, 2, strings.Count(output, msgNotInteger))
		assert.Equal(t, 2, strings.Count(output, msgOutOfRange))
		assert.Contains(t, output, msgCellOccupied)
		assert.Contains(t, output, "O| | \n-----\n |X| \n-----\n")
	})

	t.Run("Canceled context stops the loop", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		var out bytes.Buffer
		game := New(discardLogger(), &scriptedUseCase{}, lines("1", "1"), &out, Options{Plain: true})

		err := game.Play(canceled)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Plain output carries no escape codes", func(t *testing.T) {
		var out bytes.Buffer
		game := New(discardLogger(), &scriptedUseCase{}, lines(), &out, Options{Plain: true, XColor: "#FF0000", OColor: "#0000FF"})

		assert.Equal(t, "X", game.styled(entity.PlayerX))
		assert.Equal(t, "O", game.styled(entity.PlayerO))
		assert.Equal(t, " ", game.styled(entity.Empty))
	})
}

func TestConsole_PlayAgainstEngine(t *testing.T) {
	// Given: the real engine and a human who tries every cell in order
	useCase := usecase.NewGameUseCase(discardLogger(), service.NewBotService(tictactoe.NewEngine(nil)))
	input := make([]string, 0, 36)
	for round := 0; round < 2; round++ {
		for row := 1; row <= 3; row++ {
			for col := 1; col <= 3; col++ {
				input = append(input, string(rune('0'+row)), string(rune('0'+col)))
			}
		}
	}

	for _, aiFirst := range []bool{false, true} {
		var out bytes.Buffer
		game := New(discardLogger(), useCase, lines(input...), &out, Options{Plain: true, AIMovesFirst: aiFirst})

		// When: the game is played out
		err := game.Play(context.Background())

		// Then: the AI never loses
		require.NoError(t, err)
		output := out.String()
		assert.NotContains(t, output, msgHumanWins)
		assert.True(t, strings.HasSuffix(output, msgAIWins+"\n") || strings.HasSuffix(output, msgTie+"\n"), output)
	}
}
