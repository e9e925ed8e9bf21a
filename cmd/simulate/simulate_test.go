package main

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

func TestSimulate(t *testing.T) {
	s, err := simulate(rand.New(rand.NewPCG(3, 3)), 50, mb.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}

	if s.games != 50 || s.wins[0]+s.wins[1] != 50 {
		t.Fatalf("unexpected stats: %+v", s)
	}

	// 20 decks must be hit to win, a board has 100 cells
	if s.minAttacks < 20 || s.maxAttacks > 2*mb.DefaultBoardSize*mb.DefaultBoardSize || s.minAttacks > s.maxAttacks {
		t.Fatalf("attack counts out of range: %+v", s)
	}
	if avg := s.averageAttacks(); avg < float64(s.minAttacks) || avg > float64(s.maxAttacks) {
		t.Fatalf("average out of range: %f", avg)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	first, err := simulate(rand.New(rand.NewPCG(9, 9)), 10, mb.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	second, err := simulate(rand.New(rand.NewPCG(9, 9)), 10, mb.DefaultBoardSize)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("same seed, different stats: %+v\t%+v", first, second)
	}
}

func TestSimulateBoardTooSmall(t *testing.T) {
	_, err := simulate(rand.New(rand.NewPCG(1, 1)), 1, 3)
	if !errors.Is(err, cerr.ErrPlacementExhausted) {
		t.Fatalf("expected ErrPlacementExhausted\tgot: %v", err)
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	stats{games: 2, wins: [2]int{1, 1}, totalAttacks: 150, minAttacks: 70, maxAttacks: 80}.print(&buf, 42)

	out := buf.String()
	for _, want := range []string{"seed:\t\t42", "games:\t\t2", "avg 75.0", "min 70", "max 80"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}
