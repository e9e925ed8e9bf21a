package api

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/hashicorp/go-multierror"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
	mc "github.com/saeidalz13/seabattle-backend/models/connection"
)

func (rp RequestProcessor) handleReg(session *mc.Session, req mc.ReqReg) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return rp.sessionManager.WriteToSessionConn(session, mc.NewMessage(mc.TypeReg, mc.NewRespReg("", -1, "name is required")))
	}

	session.SetName(name)
	log.Printf("player registered\tplayer: %d\tname: %s", session.PlayerId(), name)

	if err := rp.sessionManager.WriteToSessionConn(
		session,
		mc.NewMessage(mc.TypeReg, mc.NewRespReg(name, session.PlayerId(), "")),
		rp.roomsMessage(),
	); err != nil {
		return err
	}

	rp.broadcastWinners()
	return nil
}

// A player takes part in one game at a time, rooms included.
func (rp RequestProcessor) handleCreateRoom(session *mc.Session) error {
	playerId := session.PlayerId()
	if session.Name() == "" {
		return cerr.ErrUnregisteredPlayer(playerId)
	}
	if len(rp.gameManager.GamesOfPlayer(playerId)) != 0 {
		return nil
	}

	game := rp.gameManager.CreateGame(playerId)
	log.Printf("room opened\tgame: %d\thost: %d", game.ID(), playerId)

	rp.record(rp.db.RecordGameCreated)
	rp.broadcastRooms()
	return nil
}

func (rp RequestProcessor) handleAddUserToRoom(session *mc.Session, req mc.ReqAddUserToRoom) error {
	playerId := session.PlayerId()
	if session.Name() == "" {
		return cerr.ErrUnregisteredPlayer(playerId)
	}
	if rp.inLiveGame(playerId) {
		return nil
	}

	var (
		joined  bool
		players []int64
	)
	err := rp.gameManager.Do(req.IndexRoom, func(g *mb.Game) error {
		// the owner joining, or a full room, is ignored by the game itself
		joined = g.AddPlayer(playerId)
		players = g.Players()
		return nil
	})
	if err != nil {
		return err
	}
	if !joined {
		return nil
	}

	rp.leaveOpenRooms(playerId, req.IndexRoom)
	rp.broadcastRooms()

	for _, p := range players {
		rp.sessionManager.SendToPlayers([]int64{p}, mc.NewMessage(mc.TypeCreateGame, mc.RespCreateGame{IdGame: req.IndexRoom, IdPlayer: p}))
	}
	return nil
}

func (rp RequestProcessor) handleSinglePlay(session *mc.Session) error {
	playerId := session.PlayerId()
	if session.Name() == "" {
		return cerr.ErrUnregisteredPlayer(playerId)
	}

	if rp.leaveOpenRooms(playerId, -1) {
		rp.broadcastRooms()
	}
	if len(rp.gameManager.GamesOfPlayer(playerId)) != 0 {
		return nil
	}

	game := rp.gameManager.CreateGame(playerId)
	gameId := game.ID()
	err := rp.gameManager.Do(gameId, func(g *mb.Game) error {
		if !g.AddPlayer(BotPlayerID) {
			return cerr.ErrPlayerNotInGame(gameId, BotPlayerID)
		}
		return g.PlaceShipsRandomly(BotPlayerID)
	})
	if err != nil {
		rp.gameManager.TerminateGame(gameId)
		return err
	}
	log.Printf("single play started\tgame: %d\tplayer: %d", gameId, playerId)

	rp.record(rp.db.RecordSinglePlay)
	return rp.sessionManager.WriteToSessionConn(session, mc.NewMessage(mc.TypeCreateGame, mc.RespCreateGame{IdGame: gameId, IdPlayer: playerId}))
}

func (rp RequestProcessor) handleAddShips(session *mc.Session, req mc.ReqAddShips) error {
	var (
		started bool
		players []int64
		ships   = make(map[int64][]mb.ShipData, 2)
		current int64
	)
	err := rp.gameManager.Do(req.GameId, func(g *mb.Game) error {
		before := g.State()
		if err := g.AddShips(session.PlayerId(), req.Ships); err != nil {
			return err
		}
		if before != mb.GameStateCreated || g.State() != mb.GameStateStarted {
			return nil
		}

		started = true
		players = g.Players()
		for _, p := range players {
			ships[p] = g.PlayerShips(p)
		}
		current = g.CurrentPlayer()
		return nil
	})
	if err != nil || !started {
		return err
	}
	log.Printf("game started\tgame: %d\tfirst turn: %d", req.GameId, current)

	for _, p := range players {
		rp.sessionManager.SendToPlayers([]int64{p}, mc.NewMessage(mc.TypeStartGame, mc.RespStartGame{Ships: ships[p], CurrentPlayerIndex: p}))
	}
	rp.sessionManager.SendToPlayers(players, mc.NewMessage(mc.TypeTurn, mc.RespTurn{CurrentPlayer: current}))

	if current == BotPlayerID {
		rp.scheduleBotAttack(req.GameId)
	}
	return nil
}

// attack resolves one shot of playerId, at pos or at a random free
// cell when pos is nil, and fans the outcome out to the players.
func (rp RequestProcessor) attack(gameId, playerId int64, pos *mb.Position) error {
	var (
		results   []mb.AttackResult
		players   []int64
		current   int64
		winner    int64
		hasWinner bool
	)
	err := rp.gameManager.Do(gameId, func(g *mb.Game) error {
		var err error
		if results, err = g.Attack(playerId, pos); err != nil {
			return err
		}
		players = g.Players()
		current = g.CurrentPlayer()
		winner, hasWinner = g.Winner()
		return nil
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	rp.sessionManager.SendToPlayers(players, mc.AttackMessages(results)...)
	rp.sessionManager.SendToPlayers(players, mc.NewMessage(mc.TypeTurn, mc.RespTurn{CurrentPlayer: current}))

	if hasWinner {
		rp.finishGame(gameId, players, winner)
		return nil
	}
	if current == BotPlayerID {
		rp.scheduleBotAttack(gameId)
	}
	return nil
}

func (rp RequestProcessor) scheduleBotAttack(gameId int64) {
	rp.bot.schedule(func() {
		err := rp.attack(gameId, BotPlayerID, nil)
		// the game may be gone by the time the bot moves
		if err != nil && !errors.Is(err, cerr.ErrGameNotFound) {
			log.Printf("bot attack failed\tgame: %d\terr: %s", gameId, err)
		}
	})
}

func (rp RequestProcessor) finishGame(gameId int64, players []int64, winner int64) {
	log.Printf("game finished\tgame: %d\twinner: %d", gameId, winner)

	rp.gameManager.TerminateGame(gameId)
	rp.sessionManager.SendToPlayers(players, mc.NewMessage(mc.TypeFinish, mc.RespFinish{WinPlayer: winner}))

	if winner != BotPlayerID {
		if name, ok := rp.sessionManager.PlayerName(winner); ok {
			rp.record(func(ctx context.Context) error { return rp.db.RecordWin(ctx, name) })
		}
	}
	rp.broadcastWinners()
}

// handleDisconnect drops the rooms of playerId and surrenders every
// game it was playing. Failures of single games do not stop the others.
func (rp RequestProcessor) handleDisconnect(playerId int64) error {
	var (
		result       *multierror.Error
		roomsChanged bool
	)

	for _, gameId := range rp.gameManager.GamesOfPlayer(playerId) {
		var (
			state     mb.GameState
			players   []int64
			winner    int64
			hasWinner bool
		)
		err := rp.gameManager.Do(gameId, func(g *mb.Game) error {
			state = g.State()
			if state == mb.GameStateRoomOpened || state == mb.GameStateFinished {
				return nil
			}
			if err := g.Surrender(playerId); err != nil {
				return err
			}
			players = g.Players()
			winner, hasWinner = g.Winner()
			return nil
		})
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		switch {
		case state == mb.GameStateRoomOpened:
			rp.gameManager.TerminateGame(gameId)
			roomsChanged = true
		case hasWinner:
			rp.finishGame(gameId, players, winner)
		default:
			rp.gameManager.TerminateGame(gameId)
		}
	}

	if roomsChanged {
		rp.broadcastRooms()
	}
	return result.ErrorOrNil()
}

// inLiveGame reports whether playerId takes part in a game other than
// a room of its own that nobody joined yet.
func (rp RequestProcessor) inLiveGame(playerId int64) bool {
	ownRooms := make(map[int64]bool)
	for _, room := range rp.gameManager.OpenRooms() {
		if room.HostId == playerId {
			ownRooms[room.GameId] = true
		}
	}
	for _, gameId := range rp.gameManager.GamesOfPlayer(playerId) {
		if !ownRooms[gameId] {
			return true
		}
	}
	return false
}

// leaveOpenRooms closes the rooms playerId is waiting in, except keep.
// Reports whether any room was closed.
func (rp RequestProcessor) leaveOpenRooms(playerId, keep int64) bool {
	var closed bool
	for _, room := range rp.gameManager.OpenRooms() {
		if room.HostId == playerId && room.GameId != keep {
			rp.gameManager.TerminateGame(room.GameId)
			closed = true
		}
	}
	return closed
}

func (rp RequestProcessor) roomsMessage() mc.Message {
	rooms := rp.gameManager.OpenRooms()

	resp := make([]mc.RespRoom, 0, len(rooms))
	for _, room := range rooms {
		name, _ := rp.sessionManager.PlayerName(room.HostId)
		resp = append(resp, mc.RespRoom{
			RoomId:    room.GameId,
			RoomUsers: []mc.RespRoomUser{{Name: name, Index: room.HostId}},
		})
	}
	return mc.NewMessage(mc.TypeUpdateRoom, resp)
}

func (rp RequestProcessor) broadcastRooms() {
	rp.sessionManager.Broadcast(rp.roomsMessage())
}

func (rp RequestProcessor) broadcastWinners() {
	winners, err := rp.db.Winners(context.Background())
	if err != nil {
		log.Println("failed to fetch winners:", err)
		return
	}
	rp.sessionManager.Broadcast(mc.NewMessage(mc.TypeUpdateWinners, respWinners(winners)))
}

// record runs a bookkeeping query; its failure never affects a game.
func (rp RequestProcessor) record(query func(ctx context.Context) error) {
	if err := query(context.Background()); err != nil {
		log.Println("failed to record:", err)
	}
}
