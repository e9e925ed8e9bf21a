package connection

import (
	"encoding/json"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

// Incoming message types
const (
	TypeReg           = "reg"
	TypeCreateRoom    = "create_room"
	TypeAddUserToRoom = "add_user_to_room"
	TypeSinglePlay    = "single_play"
	TypeAddShips      = "add_ships"
	TypeAttack        = "attack"
	TypeRandomAttack  = "randomAttack"
)

// Outgoing message types. "reg" and "attack" go both ways.
const (
	TypeUpdateRoom    = "update_room"
	TypeUpdateWinners = "update_winners"
	TypeCreateGame    = "create_game"
	TypeStartGame     = "start_game"
	TypeTurn          = "turn"
	TypeFinish        = "finish"
)

// Message is the envelope of every frame. Data carries the
// payload as a JSON encoded string, as the clients expect.
type Message struct {
	Type string `json:"type"`
	Data string `json:"data"`
	Id   int    `json:"id"`
}

func NewMessage[T any](msgType string, payload T) Message {
	msg := Message{Type: msgType}
	msg.AddPayload(payload)
	return msg
}

func (m *Message) AddPayload(payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		// payloads are plain structs; this only happens on programmer error
		panic(err)
	}
	m.Data = string(b)
}

// DecodePayload unmarshals Data into v. An empty Data
// leaves v untouched.
func (m Message) DecodePayload(v any) error {
	if m.Data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(m.Data), v); err != nil {
		return cerr.ErrUnmarshalPayload(m.Type, err)
	}
	return nil
}
