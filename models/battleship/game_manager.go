package battleship

import (
	"sort"
	"sync"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

type GameManager interface {
	CreateGame(playerId int64) *Game
	GetGame(gameId int64) (*Game, error)
	Do(gameId int64, fn func(*Game) error) error
	TerminateGame(gameId int64)
	OpenRooms() []Room
	GamesOfPlayer(playerId int64) []int64
}

// A Game does no locking of its own, every access
// goes through the mutex of its entry.
type gameEntry struct {
	mu   sync.Mutex
	game *Game
}

type BattleshipGameManager struct {
	games    map[int64]*gameEntry
	gameOpts []GameOption
	mu       sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

// gameOpts are applied to every game the manager creates.
func NewBattleshipGameManager(gameOpts ...GameOption) *BattleshipGameManager {
	return &BattleshipGameManager{
		games:    make(map[int64]*gameEntry, 10),
		gameOpts: gameOpts,
	}
}

func (bgm *BattleshipGameManager) CreateGame(playerId int64) *Game {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	game := NewGame(playerId, bgm.gameOpts...)
	for {
		if _, prs := bgm.games[game.ID()]; !prs {
			break
		}
		game.id = game.rng.Int64N(MaxRandomID)
	}

	bgm.games[game.ID()] = &gameEntry{game: game}
	return game
}

func (bgm *BattleshipGameManager) GetGame(gameId int64) (*Game, error) {
	bgm.mu.RLock()
	entry, prs := bgm.games[gameId]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameId)
	}

	return entry.game, nil
}

// Do runs fn with exclusive access to the game.
func (bgm *BattleshipGameManager) Do(gameId int64, fn func(*Game) error) error {
	bgm.mu.RLock()
	entry, prs := bgm.games[gameId]
	bgm.mu.RUnlock()
	if !prs {
		return cerr.ErrGameNotExists(gameId)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.game)
}

func (bgm *BattleshipGameManager) TerminateGame(gameId int64) {
	bgm.mu.Lock()
	delete(bgm.games, gameId)
	bgm.mu.Unlock()
}

// Room is a game still waiting for its second player.
type Room struct {
	GameId int64
	HostId int64
}

// OpenRooms lists the games in RoomOpened, ordered by id.
func (bgm *BattleshipGameManager) OpenRooms() []Room {
	bgm.mu.RLock()
	entries := make([]*gameEntry, 0, len(bgm.games))
	for _, entry := range bgm.games {
		entries = append(entries, entry)
	}
	bgm.mu.RUnlock()

	rooms := make([]Room, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		if entry.game.State() == GameStateRoomOpened {
			rooms = append(rooms, Room{GameId: entry.game.ID(), HostId: entry.game.slots[0].id})
		}
		entry.mu.Unlock()
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].GameId < rooms[j].GameId })
	return rooms
}

func (bgm *BattleshipGameManager) GamesOfPlayer(playerId int64) []int64 {
	bgm.mu.RLock()
	entries := make([]*gameEntry, 0, len(bgm.games))
	for _, entry := range bgm.games {
		entries = append(entries, entry)
	}
	bgm.mu.RUnlock()

	gameIds := make([]int64, 0, 1)
	for _, entry := range entries {
		entry.mu.Lock()
		if entry.game.HasPlayer(playerId) {
			gameIds = append(gameIds, entry.game.ID())
		}
		entry.mu.Unlock()
	}

	sort.Slice(gameIds, func(i, j int) bool { return gameIds[i] < gameIds[j] })
	return gameIds
}
