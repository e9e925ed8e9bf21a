package main

import (
	"fmt"
	"math/rand/v2"

	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

const (
	firstSeat  int64 = 1
	secondSeat int64 = 2
)

type stats struct {
	games        int
	wins         [2]int
	totalAttacks int
	minAttacks   int
	maxAttacks   int
}

func (s stats) averageAttacks() float64 {
	if s.games == 0 {
		return 0
	}
	return float64(s.totalAttacks) / float64(s.games)
}

// simulate plays games where both seats place their fleets randomly
// and always attack a random free cell.
func simulate(rng *rand.Rand, games, boardSize int) (stats, error) {
	var s stats

	for i := 0; i < games; i++ {
		attacks, winner, err := playGame(rng, boardSize)
		if err != nil {
			return s, fmt.Errorf("game %d: %w", i+1, err)
		}

		s.games++
		s.totalAttacks += attacks
		if s.games == 1 || attacks < s.minAttacks {
			s.minAttacks = attacks
		}
		if attacks > s.maxAttacks {
			s.maxAttacks = attacks
		}
		if winner == firstSeat {
			s.wins[0]++
		} else {
			s.wins[1]++
		}
	}
	return s, nil
}

func playGame(rng *rand.Rand, boardSize int) (attacks int, winner int64, err error) {
	game := mb.NewGame(firstSeat, mb.WithBoardSize(boardSize), mb.WithRand(rng))
	if !game.AddPlayer(secondSeat) {
		return 0, 0, fmt.Errorf("second seat rejected")
	}
	for _, seat := range []int64{firstSeat, secondSeat} {
		if err := game.PlaceShipsRandomly(seat); err != nil {
			return 0, 0, err
		}
	}

	// every accepted attack marks at least one cell
	maxAttacks := 2 * boardSize * boardSize
	for game.State() == mb.GameStateStarted {
		if attacks == maxAttacks {
			return attacks, 0, fmt.Errorf("no winner after %d attacks", attacks)
		}

		results, err := game.Attack(game.CurrentPlayer(), nil)
		if err != nil {
			return attacks, 0, err
		}
		if len(results) == 0 {
			return attacks, 0, fmt.Errorf("attack of player %d rejected", game.CurrentPlayer())
		}
		attacks++
	}

	winner, ok := game.Winner()
	if !ok {
		return attacks, 0, fmt.Errorf("game ended without a winner, state: %s", game.State())
	}
	return attacks, winner, nil
}
