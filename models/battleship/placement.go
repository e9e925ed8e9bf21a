package battleship

import (
	"math/rand/v2"
)

// Number of times a whole fleet is laid out from scratch
// before giving up.
const maxFleetAttempts int = 8

type ShipTemplate struct {
	Length int
	Type   ShipType
}

// StandardKit is the ten ship fleet of a 10x10 board.
var StandardKit = []ShipTemplate{
	{Length: 4, Type: ShipTypeHuge},
	{Length: 3, Type: ShipTypeLarge},
	{Length: 3, Type: ShipTypeLarge},
	{Length: 2, Type: ShipTypeMedium},
	{Length: 2, Type: ShipTypeMedium},
	{Length: 2, Type: ShipTypeMedium},
	{Length: 1, Type: ShipTypeSmall},
	{Length: 1, Type: ShipTypeSmall},
	{Length: 1, Type: ShipTypeSmall},
	{Length: 1, Type: ShipTypeSmall},
}

// RandomFleet lays out the kit on a scratch board so that no two
// ships touch, not even diagonally. attempts is the number of
// fleets tried; ok is false when every one of them dead-ended.
func RandomFleet(rng *rand.Rand, boardSize int, kit []ShipTemplate) (ships []*Ship, attempts int, ok bool) {
	for attempts = 1; attempts <= maxFleetAttempts; attempts++ {
		ships, ok = layoutFleet(rng, boardSize, kit)
		if ok {
			return ships, attempts, true
		}
	}
	return nil, maxFleetAttempts, false
}

func layoutFleet(rng *rand.Rand, boardSize int, kit []ShipTemplate) ([]*Ship, bool) {
	scratch := NewBoard(boardSize)
	ships := make([]*Ship, 0, len(kit))

	for _, tmpl := range kit {
		ship, err := NewShip(Position{}, rng.IntN(2) == 0, tmpl.Length, tmpl.Type)
		if err != nil {
			return nil, false
		}
		if !placeShip(rng, &scratch, ship) {
			return nil, false
		}

		// Anything this ship covers or touches is off limits.
		scratch.SetValues(ship.DeckPositions(), AttackStatusMiss)
		scratch.SetValues(ship.AroundPositions(), AttackStatusMiss)
		ships = append(ships, ship)
	}
	return ships, true
}

func placeShip(rng *rand.Rand, scratch *Board, ship *Ship) bool {
	maxAnchors := 4 * scratch.Size() * scratch.Size()

	for i := 0; i < maxAnchors; i++ {
		anchor, ok := scratch.RandomFreePosition(rng)
		if !ok {
			return false
		}

		ship.SetPosition(anchor)
		if scratch.AreFree(ship.DeckPositions()) {
			return true
		}

		ship.SetVertical(!ship.IsVertical())
		if scratch.AreFree(ship.DeckPositions()) {
			return true
		}
	}
	return false
}
