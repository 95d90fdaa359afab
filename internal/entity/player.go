package entity

// Player is a seat at the board. The AI always sits on PlayerX.
type Player struct {
	ID   string
	Mark Mark
}

func NewHumanPlayer(id string) *Player {
	return &Player{ID: id, Mark: PlayerO}
}

func (that *Player) IsBot() bool {
	return that.Mark == PlayerX
}
