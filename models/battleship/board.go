package battleship

import (
	"math/rand/v2"
)

const DefaultBoardSize int = 10

type AttackStatus string

const (
	AttackStatusNone   AttackStatus = ""
	AttackStatusMiss   AttackStatus = "miss"
	AttackStatusShot   AttackStatus = "shot"
	AttackStatusKilled AttackStatus = "killed"

	// Returned when reading outside of the board.
	AttackStatusInvalid AttackStatus = "invalid"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Board is a square grid of attack marks. It knows nothing
// about ships; the game decides what gets written where.
type Board struct {
	size  int
	cells []AttackStatus
}

func NewBoard(size int) Board {
	return Board{
		size:  size,
		cells: make([]AttackStatus, size*size),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) IsValid(pos Position) bool {
	return pos.X >= 0 && pos.X < b.size && pos.Y >= 0 && pos.Y < b.size
}

func (b *Board) GetValue(pos Position) AttackStatus {
	if !b.IsValid(pos) {
		return AttackStatusInvalid
	}
	return b.cells[b.index(pos)]
}

// SetValue silently ignores positions outside of the board.
func (b *Board) SetValue(pos Position, status AttackStatus) {
	if !b.IsValid(pos) {
		return
	}
	b.cells[b.index(pos)] = status
}

func (b *Board) SetValues(positions []Position, status AttackStatus) {
	for _, pos := range positions {
		b.SetValue(pos, status)
	}
}

func (b *Board) IsFree(pos Position) bool {
	return b.IsValid(pos) && b.cells[b.index(pos)] == AttackStatusNone
}

func (b *Board) AreFree(positions []Position) bool {
	for _, pos := range positions {
		if !b.IsFree(pos) {
			return false
		}
	}
	return true
}

func (b *Board) FreeCount() int {
	count := 0
	for _, status := range b.cells {
		if status == AttackStatusNone {
			count++
		}
	}
	return count
}

// RandomFreePosition picks uniformly among the cells that are
// currently unmarked. ok is false once the board is full.
func (b *Board) RandomFreePosition(rng *rand.Rand) (pos Position, ok bool) {
	free := make([]int, 0, len(b.cells))
	for i, status := range b.cells {
		if status == AttackStatusNone {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return Position{}, false
	}
	return b.position(free[rng.IntN(len(free))]), true
}

func (b *Board) index(pos Position) int {
	return pos.Y*b.size + pos.X
}

func (b *Board) position(index int) Position {
	return Position{X: index % b.size, Y: index / b.size}
}
