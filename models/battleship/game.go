package battleship

import (
	"math/rand/v2"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
)

// Game and player ids are drawn from [0, MaxRandomID).
const MaxRandomID int64 = 1 << 48

type GameState uint8

const (
	GameStateRoomOpened GameState = iota
	GameStateCreated
	GameStateStarted
	GameStateFinished
)

func (s GameState) String() string {
	switch s {
	case GameStateRoomOpened:
		return "RoomOpened"
	case GameStateCreated:
		return "GameCreated"
	case GameStateStarted:
		return "GameStarted"
	case GameStateFinished:
		return "GameFinished"
	default:
		return "Unknown"
	}
}

var allowedTransitions = map[GameState][]GameState{
	GameStateRoomOpened: {GameStateCreated},
	GameStateCreated:    {GameStateStarted, GameStateFinished},
	GameStateStarted:    {GameStateFinished},
}

type AttackResult struct {
	Position      Position     `json:"position"`
	CurrentPlayer int64        `json:"currentPlayer"`
	Status        AttackStatus `json:"status"`
}

// playerSlot holds everything one side of the game owns.
// ready is set once the fleet has been submitted.
type playerSlot struct {
	id    int64
	ready bool
	ships []Ship
	board Board
}

type Game struct {
	id            int64
	state         GameState
	boardSize     int
	slots         [2]playerSlot
	playerCount   int
	currentPlayer int64
	winner        int64
	hasWinner     bool
	rng           *rand.Rand
}

type GameOption func(*Game)

func WithBoardSize(size int) GameOption {
	return func(g *Game) {
		g.boardSize = size
	}
}

// WithRand makes every random decision of the game come from rng.
func WithRand(rng *rand.Rand) GameOption {
	return func(g *Game) {
		g.rng = rng
	}
}

func WithID(id int64) GameOption {
	return func(g *Game) {
		g.id = id
	}
}

func NewGame(firstPlayer int64, opts ...GameOption) *Game {
	game := &Game{
		id:            -1,
		state:         GameStateRoomOpened,
		boardSize:     DefaultBoardSize,
		currentPlayer: firstPlayer,
	}
	game.slots[0].id = firstPlayer
	game.playerCount = 1

	for _, opt := range opts {
		opt(game)
	}
	if game.rng == nil {
		game.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if game.id < 0 {
		game.id = game.rng.Int64N(MaxRandomID)
	}

	return game
}

func (g *Game) ID() int64 {
	return g.id
}

func (g *Game) State() GameState {
	return g.state
}

func (g *Game) BoardSize() int {
	return g.boardSize
}

// Players returns a snapshot of the roster in joining order.
func (g *Game) Players() []int64 {
	players := make([]int64, 0, g.playerCount)
	for i := 0; i < g.playerCount; i++ {
		players = append(players, g.slots[i].id)
	}
	return players
}

func (g *Game) CurrentPlayer() int64 {
	return g.currentPlayer
}

func (g *Game) Winner() (int64, bool) {
	return g.winner, g.hasWinner
}

func (g *Game) HasPlayer(playerId int64) bool {
	return g.slotIndex(playerId) != -1
}

// Enemy returns the other roster member. ok is false when
// playerId is not in the game or no opponent has joined yet.
func (g *Game) Enemy(playerId int64) (int64, bool) {
	idx := g.slotIndex(playerId)
	if idx == -1 || g.playerCount < 2 {
		return 0, false
	}
	return g.slots[1-idx].id, true
}

// PlayerShips returns the fleet of playerId as placed.
func (g *Game) PlayerShips(playerId int64) []ShipData {
	idx := g.slotIndex(playerId)
	if idx == -1 {
		return nil
	}

	ships := make([]ShipData, 0, len(g.slots[idx].ships))
	for i := range g.slots[idx].ships {
		ships = append(ships, g.slots[idx].ships[i].Data())
	}
	return ships
}

func (g *Game) AddPlayer(playerId int64) bool {
	if g.state != GameStateRoomOpened || g.playerCount >= 2 || g.HasPlayer(playerId) {
		return false
	}

	g.slots[g.playerCount].id = playerId
	g.playerCount++

	if g.playerCount == 2 {
		// cannot fail, RoomOpened -> GameCreated is allowed
		_ = g.transition(GameStateCreated)
	}
	return true
}

// AddShips registers the fleet of playerId. A player may resubmit
// until the opponent has submitted too; then the game starts with
// a random player on turn. Calls outside of GameCreated are ignored.
func (g *Game) AddShips(playerId int64, data []ShipData) error {
	idx, err := g.placementSlot(playerId)
	if err != nil {
		return err
	}
	if g.state != GameStateCreated {
		return nil
	}
	if len(data) == 0 {
		return cerr.ErrEmptyFleet(g.id, playerId)
	}

	ships := make([]Ship, 0, len(data))
	for _, d := range data {
		ship, err := NewShipFromData(d)
		if err != nil {
			return err
		}
		ships = append(ships, *ship)
	}

	g.setFleet(idx, ships)
	return nil
}

// PlaceShipsRandomly lays out the standard kit for playerId
// and submits it like AddShips would.
func (g *Game) PlaceShipsRandomly(playerId int64) error {
	idx, err := g.placementSlot(playerId)
	if err != nil {
		return err
	}
	if g.state != GameStateCreated {
		return nil
	}

	placed, attempts, ok := RandomFleet(g.rng, g.boardSize, StandardKit)
	if !ok {
		return cerr.ErrRandomPlacementFailed(g.id, playerId, attempts)
	}

	ships := make([]Ship, 0, len(placed))
	for _, ship := range placed {
		ships = append(ships, *ship)
	}

	g.setFleet(idx, ships)
	return nil
}

// RandomAttackPosition picks a free cell of the opponent's board.
func (g *Game) RandomAttackPosition(playerId int64) (Position, bool) {
	idx := g.slotIndex(playerId)
	if idx == -1 || g.playerCount < 2 {
		return Position{}, false
	}

	enemy := &g.slots[1-idx]
	if !enemy.ready {
		return Position{}, false
	}
	return enemy.board.RandomFreePosition(g.rng)
}

// Attack resolves a shot of playerId at pos, or at a random free
// cell when pos is nil. Out of turn, stale or repeated attacks
// produce no results and no error.
func (g *Game) Attack(playerId int64, pos *Position) ([]AttackResult, error) {
	if g.state != GameStateStarted || g.currentPlayer != playerId {
		return nil, nil
	}

	idx := g.slotIndex(playerId)
	if idx == -1 {
		return nil, nil
	}
	enemy := &g.slots[1-idx]

	var target Position
	if pos == nil {
		free, ok := enemy.board.RandomFreePosition(g.rng)
		if !ok {
			return nil, cerr.ErrRandomAttackFailed(g.id, playerId)
		}
		target = free
	} else {
		target = *pos
	}

	if !enemy.board.IsFree(target) {
		return nil, nil
	}

	var damaged *Ship
	for i := range enemy.ships {
		if enemy.ships[i].GetShot(target) {
			damaged = &enemy.ships[i]
			break
		}
	}

	if damaged == nil {
		enemy.board.SetValue(target, AttackStatusMiss)
		g.currentPlayer = enemy.id
		return []AttackResult{{Position: target, CurrentPlayer: playerId, Status: AttackStatusMiss}}, nil
	}

	if !damaged.IsKilled() {
		enemy.board.SetValue(target, AttackStatusShot)
		return []AttackResult{{Position: target, CurrentPlayer: playerId, Status: AttackStatusShot}}, nil
	}

	results := make([]AttackResult, 0, len(damaged.DeckPositions())+len(damaged.AroundPositions()))
	for _, deck := range damaged.DeckPositions() {
		if !enemy.board.IsValid(deck) {
			continue
		}
		enemy.board.SetValue(deck, AttackStatusKilled)
		results = append(results, AttackResult{Position: deck, CurrentPlayer: playerId, Status: AttackStatusKilled})
	}
	for _, around := range damaged.AroundPositions() {
		// Hand placed fleets may touch; a neighbour's hit deck stays as it is.
		switch enemy.board.GetValue(around) {
		case AttackStatusInvalid, AttackStatusShot, AttackStatusKilled:
			continue
		}
		enemy.board.SetValue(around, AttackStatusMiss)
		results = append(results, AttackResult{Position: around, CurrentPlayer: playerId, Status: AttackStatusMiss})
	}

	if fleetDestroyed(enemy.ships) {
		_ = g.finish(playerId)
	}
	return results, nil
}

// Surrender ends the game in favour of the opponent of playerId,
// whoever holds the turn.
func (g *Game) Surrender(playerId int64) error {
	if g.state == GameStateFinished {
		return cerr.ErrGameAlreadyFinished(g.id)
	}

	idx := g.slotIndex(playerId)
	if idx == -1 {
		return cerr.ErrPlayerNotInGame(g.id, playerId)
	}
	if g.playerCount < 2 {
		return cerr.ErrSurrenderWithoutOpponent(g.id)
	}

	return g.finish(g.slots[1-idx].id)
}

func (g *Game) finish(winner int64) error {
	if err := g.transition(GameStateFinished); err != nil {
		return err
	}
	g.winner = winner
	g.hasWinner = true
	return nil
}

func (g *Game) setFleet(idx int, ships []Ship) {
	g.slots[idx].ships = ships
	g.slots[idx].board = NewBoard(g.boardSize)
	g.slots[idx].ready = true

	if !g.slots[0].ready || !g.slots[1].ready {
		return
	}

	g.currentPlayer = g.slots[g.rng.IntN(2)].id
	_ = g.transition(GameStateStarted)
}

func (g *Game) placementSlot(playerId int64) (int, error) {
	if g.state == GameStateFinished {
		return -1, cerr.ErrGameAlreadyFinished(g.id)
	}

	idx := g.slotIndex(playerId)
	if idx == -1 {
		return -1, cerr.ErrPlayerNotInGame(g.id, playerId)
	}
	return idx, nil
}

func (g *Game) transition(to GameState) error {
	for _, allowed := range allowedTransitions[g.state] {
		if allowed == to {
			g.state = to
			return nil
		}
	}
	return cerr.ErrStateTransition(g.state.String(), to.String())
}

func (g *Game) slotIndex(playerId int64) int {
	for i := 0; i < g.playerCount; i++ {
		if g.slots[i].id == playerId {
			return i
		}
	}
	return -1
}

func fleetDestroyed(ships []Ship) bool {
	for i := range ships {
		if !ships[i].IsKilled() {
			return false
		}
	}
	return true
}
