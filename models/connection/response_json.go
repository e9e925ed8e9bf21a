package connection

import (
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

type RespReg struct {
	Name      string `json:"name"`
	Index     int64  `json:"index"`
	Error     bool   `json:"error"`
	ErrorText string `json:"errorText"`
}

type RespRoomUser struct {
	Name  string `json:"name"`
	Index int64  `json:"index"`
}

type RespRoom struct {
	RoomId    int64          `json:"roomId"`
	RoomUsers []RespRoomUser `json:"roomUsers"`
}

type RespCreateGame struct {
	IdGame   int64 `json:"idGame"`
	IdPlayer int64 `json:"idPlayer"`
}

type RespStartGame struct {
	Ships              []mb.ShipData `json:"ships"`
	CurrentPlayerIndex int64         `json:"currentPlayerIndex"`
}

type RespTurn struct {
	CurrentPlayer int64 `json:"currentPlayer"`
}

type RespFinish struct {
	WinPlayer int64 `json:"winPlayer"`
}

type RespWinner struct {
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}

func NewRespReg(name string, index int64, errorText string) RespReg {
	return RespReg{
		Name:      name,
		Index:     index,
		Error:     errorText != "",
		ErrorText: errorText,
	}
}

// AttackMessages fans the results of one attack out into one
// message per affected cell.
func AttackMessages(results []mb.AttackResult) []Message {
	msgs := make([]Message, 0, len(results))
	for _, result := range results {
		msgs = append(msgs, NewMessage(TypeAttack, result))
	}
	return msgs
}
