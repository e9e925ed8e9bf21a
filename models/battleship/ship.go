package battleship

import (
	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

const (
	MinShipLength = 1
	MaxShipLength = 4
)

type ShipType string

const (
	ShipTypeSmall  ShipType = "small"
	ShipTypeMedium ShipType = "medium"
	ShipTypeLarge  ShipType = "large"
	ShipTypeHuge   ShipType = "huge"
)

// Classification of a ship is fully determined by its length.
func ShipTypeOfLength(length int) ShipType {
	switch length {
	case 1:
		return ShipTypeSmall
	case 2:
		return ShipTypeMedium
	case 3:
		return ShipTypeLarge
	case 4:
		return ShipTypeHuge
	default:
		return ""
	}
}

// ShipData is the placement of one ship as submitted by a
// player. Direction true means vertical.
type ShipData struct {
	Position  Position `json:"position"`
	Direction bool     `json:"direction"`
	Length    int      `json:"length"`
	Type      ShipType `json:"type"`
}

type Ship struct {
	position Position
	vertical bool
	length   int
	shipType ShipType
	decks    []Position
	around   []Position
	health   []bool
}

func NewShip(position Position, vertical bool, length int, shipType ShipType) (*Ship, error) {
	if length < MinShipLength || length > MaxShipLength {
		return nil, cerr.ErrShipLengthOutOfRange(length)
	}
	derived := ShipTypeOfLength(length)
	if shipType != "" && shipType != derived {
		return nil, cerr.ErrShipTypeMismatch(length, string(shipType))
	}
	shipType = derived

	health := make([]bool, length)
	for i := range health {
		health[i] = true
	}

	sh := &Ship{
		position: position,
		vertical: vertical,
		length:   length,
		shipType: shipType,
		health:   health,
	}
	sh.locate()
	return sh, nil
}

func NewShipFromData(data ShipData) (*Ship, error) {
	return NewShip(data.Position, data.Direction, data.Length, data.Type)
}

func (sh *Ship) Data() ShipData {
	return ShipData{
		Position:  sh.position,
		Direction: sh.vertical,
		Length:    sh.length,
		Type:      sh.shipType,
	}
}

func (sh *Ship) Position() Position {
	return sh.position
}

func (sh *Ship) IsVertical() bool {
	return sh.vertical
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Type() ShipType {
	return sh.shipType
}

func (sh *Ship) DeckPositions() []Position {
	return sh.decks
}

func (sh *Ship) AroundPositions() []Position {
	return sh.around
}

// SetPosition and SetVertical are meant for the placement phase only.
func (sh *Ship) SetPosition(position Position) {
	sh.position = position
	sh.locate()
}

func (sh *Ship) SetVertical(vertical bool) {
	sh.vertical = vertical
	sh.locate()
}

func (sh *Ship) IsDeck(pos Position) bool {
	dx := pos.X - sh.position.X
	dy := pos.Y - sh.position.Y
	if sh.vertical {
		return dx == 0 && dy >= 0 && dy < sh.length
	}
	return dy == 0 && dx >= 0 && dx < sh.length
}

// GetShot damages the deck at pos. Returns false when pos is
// not part of this ship. Hitting the same deck twice still
// returns true.
func (sh *Ship) GetShot(pos Position) bool {
	if !sh.IsDeck(pos) {
		return false
	}

	deckIndex := pos.X - sh.position.X
	if sh.vertical {
		deckIndex = pos.Y - sh.position.Y
	}
	sh.health[deckIndex] = false
	return true
}

func (sh *Ship) IsKilled() bool {
	for _, alive := range sh.health {
		if alive {
			return false
		}
	}
	return true
}

func (sh *Ship) locate() {
	sh.decks = make([]Position, 0, sh.length)
	for i := 0; i < sh.length; i++ {
		if sh.vertical {
			sh.decks = append(sh.decks, Position{X: sh.position.X, Y: sh.position.Y + i})
		} else {
			sh.decks = append(sh.decks, Position{X: sh.position.X + i, Y: sh.position.Y})
		}
	}

	// One cell halo around the deck rectangle, corners included.
	// Ships do not know the board, so cells may lie outside of it.
	last := sh.decks[len(sh.decks)-1]
	sh.around = make([]Position, 0, 2*sh.length+6)
	for y := sh.position.Y - 1; y <= last.Y+1; y++ {
		for x := sh.position.X - 1; x <= last.X+1; x++ {
			pos := Position{X: x, Y: y}
			if sh.IsDeck(pos) {
				continue
			}
			sh.around = append(sh.around, pos)
		}
	}
}
