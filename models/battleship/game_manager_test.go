package battleship

import (
	"errors"
	"sync"
	"testing"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

func TestGameManagerLifecycle(t *testing.T) {
	bgm := NewBattleshipGameManager(WithBoardSize(DefaultBoardSize))

	first := bgm.CreateGame(1)
	second := bgm.CreateGame(2)
	if first.ID() == second.ID() {
		t.Fatal("two games share an id")
	}

	game, err := bgm.GetGame(first.ID())
	if err != nil {
		t.Fatal(err)
	}
	if game != first {
		t.Fatal("GetGame returned another game")
	}

	if rooms := bgm.OpenRooms(); len(rooms) != 2 {
		t.Fatalf("expected open rooms: %d\tgot: %d", 2, len(rooms))
	}

	err = bgm.Do(second.ID(), func(g *Game) error {
		g.AddPlayer(1)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	rooms := bgm.OpenRooms()
	if len(rooms) != 1 || rooms[0].GameId != first.ID() || rooms[0].HostId != 1 {
		t.Fatalf("unexpected open rooms: %+v", rooms)
	}
	if ids := bgm.GamesOfPlayer(1); len(ids) != 2 {
		t.Fatalf("expected games of player: %d\tgot: %v", 2, ids)
	}

	bgm.TerminateGame(first.ID())
	if _, err := bgm.GetGame(first.ID()); !errors.Is(err, cerr.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound\tgot: %v", err)
	}
	if err := bgm.Do(first.ID(), func(*Game) error { return nil }); !errors.Is(err, cerr.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound\tgot: %v", err)
	}
}

func TestGameManagerDoSerializes(t *testing.T) {
	bgm := NewBattleshipGameManager()
	game := bgm.CreateGame(1)

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bgm.Do(game.ID(), func(*Game) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected counter: %d\tgot: %d", 50, counter)
	}
}
