package connection

import (
	"encoding/json"
	"errors"
	"testing"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

func TestNewMessageEncodesDataAsString(t *testing.T) {
	msg := NewMessage(TypeTurn, RespTurn{CurrentPlayer: 7})

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	expected := `{"type":"turn","data":"{\"currentPlayer\":7}","id":0}`
	if string(raw) != expected {
		t.Fatalf("expected: %s\tgot: %s", expected, raw)
	}
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectedPos *mb.Position
		expectedErr error
	}{
		{
			name:        "attack with coordinates",
			raw:         `{"type":"attack","data":"{\"gameId\":5,\"x\":3,\"y\":4,\"indexPlayer\":9}","id":0}`,
			expectedPos: &mb.Position{X: 3, Y: 4},
		},
		{
			name: "attack without coordinates",
			raw:  `{"type":"attack","data":"{\"gameId\":5,\"indexPlayer\":9}","id":0}`,
		},
		{
			name:        "broken data",
			raw:         `{"type":"attack","data":"{gameId","id":0}`,
			expectedErr: cerr.ErrInvalidPayload,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var msg Message
			if err := json.Unmarshal([]byte(test.raw), &msg); err != nil {
				t.Fatal(err)
			}

			var req ReqAttack
			err := msg.DecodePayload(&req)
			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected: %v\tgot: %v", test.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if req.GameId != 5 || req.IndexPlayer != 9 {
				t.Fatalf("unexpected request: %+v", req)
			}

			pos := req.Position()
			if (pos == nil) != (test.expectedPos == nil) {
				t.Fatalf("expected position: %v\tgot: %v", test.expectedPos, pos)
			}
			if pos != nil && *pos != *test.expectedPos {
				t.Fatalf("expected position: %+v\tgot: %+v", *test.expectedPos, *pos)
			}
		})
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	msg := Message{Type: TypeCreateRoom}

	req := ReqReg{Name: "untouched"}
	if err := msg.DecodePayload(&req); err != nil {
		t.Fatal(err)
	}
	if req.Name != "untouched" {
		t.Fatalf("payload changed by empty data: %+v", req)
	}
}

func TestAttackMessages(t *testing.T) {
	results := []mb.AttackResult{
		{Position: mb.NewPosition(0, 0), CurrentPlayer: 1, Status: mb.AttackStatusKilled},
		{Position: mb.NewPosition(1, 0), CurrentPlayer: 1, Status: mb.AttackStatusMiss},
	}

	msgs := AttackMessages(results)
	if len(msgs) != 2 {
		t.Fatalf("expected messages: %d\tgot: %d", 2, len(msgs))
	}

	var decoded mb.AttackResult
	if err := msgs[1].DecodePayload(&decoded); err != nil {
		t.Fatal(err)
	}
	if msgs[1].Type != TypeAttack || decoded != results[1] {
		t.Fatalf("expected: %+v\tgot: %+v", results[1], decoded)
	}
}

func TestNewRespReg(t *testing.T) {
	if resp := NewRespReg("ann", 3, ""); resp.Error {
		t.Fatal("error flag set without error text")
	}
	if resp := NewRespReg("", 3, "name is required"); !resp.Error {
		t.Fatal("error flag not set")
	}
}
