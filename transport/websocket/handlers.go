package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/apperror"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
	"github.com/m-rishabh-007/Codsoft-Internship/internal/usecase"
)

var ErrNoGame = errors.New("no game in progress, send game:new first")

func (that *Server) handleNewGame(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleNewGame", "playerID", sess.player.ID)

	var payloadReq NewGamePayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			sess.sendError(msg.Action, "malformed payload")
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	first := entity.PlayerO
	if payloadReq.First != "" {
		mark, err := entity.ParseMark(payloadReq.First)
		if err != nil || mark == entity.Empty {
			sess.sendError(msg.Action, fmt.Sprintf("%v: first must be X or O", apperror.ErrInvalidMark))
			return nil
		}
		first = mark
	}

	result, err := that.uGame.NewGame(ctx, first)
	if err != nil {
		sess.sendError(msg.Action, "failed to create a new game")
		return fmt.Errorf("failed to create game: %w", err)
	}

	sess.game = result.Game
	log.Info("game created", "gameID", result.Game.ID)

	sess.sendMessage(msg.Action, that.responseFor(sess, result))

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, sess *session, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn", "playerID", sess.player.ID)

	if sess.game == nil {
		sess.sendError(msg.Action, ErrNoGame.Error())
		return nil
	}

	var payloadReq TurnPayload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		sess.sendError(msg.Action, "malformed payload")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log = log.With("gameID", sess.game.ID)

	result, err := that.uGame.MakeTurn(ctx, sess.game, entity.Cell{Row: payloadReq.Row, Col: payloadReq.Col})
	switch {
	case errors.Is(err, apperror.ErrGameFinished) && result != nil:
		log.Info("game finished", "winner", result.Game.Winner.String(), "tie", result.Game.Tie)
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrNotYourTurn):
		sess.sendError(msg.Action, fmt.Sprintf("game %s: %v", sess.game.ID, err))
		return nil
	case err != nil:
		sess.sendError(msg.Action, "failed to make turn")
		return fmt.Errorf("failed to make turn: %w", err)
	}

	sess.sendMessage(msg.Action, that.responseFor(sess, result))

	return nil
}

func (that *Server) responseFor(sess *session, result *usecase.TurnResult) ResponsePayload {
	payload := ResponsePayload{
		Player: &PlayerView{ID: sess.player.ID, Mark: sess.player.Mark.String()},
		Game:   newGameView(result.Game),
	}
	if result.BotMoved {
		move := result.BotMove
		payload.BotMove = &move
	}

	return payload
}
