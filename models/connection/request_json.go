package connection

import (
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

type ReqReg struct {
	Name string `json:"name"`
}

type ReqAddUserToRoom struct {
	IndexRoom int64 `json:"indexRoom"`
}

type ReqAddShips struct {
	GameId      int64         `json:"gameId"`
	Ships       []mb.ShipData `json:"ships"`
	IndexPlayer int64         `json:"indexPlayer"`
}

// X and Y are optional; without them the attack
// lands on a random free cell.
type ReqAttack struct {
	GameId      int64 `json:"gameId"`
	X           *int  `json:"x,omitempty"`
	Y           *int  `json:"y,omitempty"`
	IndexPlayer int64 `json:"indexPlayer"`
}

func (r ReqAttack) Position() *mb.Position {
	if r.X == nil || r.Y == nil {
		return nil
	}
	pos := mb.NewPosition(*r.X, *r.Y)
	return &pos
}

type ReqRandomAttack struct {
	GameId      int64 `json:"gameId"`
	IndexPlayer int64 `json:"indexPlayer"`
}
