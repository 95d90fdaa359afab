package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m-rishabh-007/Codsoft-Internship/internal/entity"
)

const wsIdlePingInterval = 30 * time.Second

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type NewGamePayload struct {
	First string `json:"first"`
}

type TurnPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ResponsePayload struct {
	Player  *PlayerView  `json:"player,omitempty"`
	Game    *GameView    `json:"game,omitempty"`
	BotMove *entity.Cell `json:"botMove,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type PlayerView struct {
	ID   string `json:"id"`
	Mark string `json:"mark"`
}

type GameView struct {
	ID     string   `json:"id"`
	Board  []string `json:"board"`
	Turn   string   `json:"turn"`
	Status string   `json:"status"`
	Winner string   `json:"winner,omitempty"`
	Tie    bool     `json:"tie"`
}

func newGameView(game *entity.Game) *GameView {
	view := &GameView{
		ID:     game.ID,
		Board:  game.Board.Cells(),
		Status: game.Status,
		Tie:    game.Tie,
	}
	if game.Turn != entity.Empty {
		view.Turn = game.Turn.String()
	}
	if game.Winner != entity.Empty {
		view.Winner = game.Winner.String()
	}

	return view
}

// session is the state of one connection. Only the read loop touches game.
type session struct {
	player *entity.Player
	game   *entity.Game

	send chan []byte
	done <-chan struct{}
}

func newSession(ctx context.Context, player *entity.Player) *session {
	return &session{
		player: player,
		send:   make(chan []byte, sendBufferSize),
		done:   ctx.Done(),
	}
}

func (that *session) sendMessage(action string, payload ResponsePayload) {
	message := Message{
		Action:  action,
		Payload: mustMarshal(payload),
	}

	select {
	case that.send <- mustMarshal(message):
	case <-that.done:
	}
}

func (that *session) sendError(action, errorMsg string) {
	that.sendMessage(action, ResponsePayload{Error: errorMsg})
}

// writeWSWithHeartbeat owns all writes to conn. It pings an idle client so
// proxies keep the connection open.
func writeWSWithHeartbeat(ctx context.Context, conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(Message{Action: "ping"})

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-send:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
