package connection

import (
	"encoding/base64"
	"log"
	"math/rand/v2"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	FindSession(sessionId string) (*Session, error)
	FindPlayerSession(playerId int64) (*Session, error)
	TerminateSession(sessionId string)
	PlayerName(playerId int64) (string, bool)

	WriteToSessionConn(session *Session, msgs ...Message) error
	SendToPlayers(playerIds []int64, msgs ...Message)
	Broadcast(msgs ...Message)
}

type BattleshipSessionManager struct {
	sessions map[string]*Session
	players  map[int64]*Session
	mu       sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions: make(map[string]*Session, initMapSize),
		players:  make(map[int64]*Session, initMapSize),
	}
}

// Every session gets a URL compatible id and a fresh
// player index that identifies it inside games.
func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	playerId := rand.Int64N(mb.MaxRandomID)
	for {
		if _, prs := bsm.players[playerId]; !prs {
			break
		}
		playerId = rand.Int64N(mb.MaxRandomID)
	}

	session := NewSession(sessionId, playerId, conn)
	bsm.sessions[sessionId] = session
	bsm.players[playerId] = session
	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotExists(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) FindPlayerSession(playerId int64) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.players[playerId]
	if !prs {
		return nil, cerr.ErrSessionNotExists("player " + strconv.FormatInt(playerId, 10))
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return
	}
	delete(bsm.players, session.playerId)
	delete(bsm.sessions, sessionId)
}

// PlayerName falls back to a generated label for players
// that never registered a name.
func (bsm *BattleshipSessionManager) PlayerName(playerId int64) (string, bool) {
	session, err := bsm.FindPlayerSession(playerId)
	if err != nil {
		return "", false
	}
	if name := session.Name(); name != "" {
		return name, true
	}
	return "player " + strconv.FormatInt(playerId, 10), true
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msgs ...Message) error {
	for _, msg := range msgs {
		if err := session.writeToConnWithRetry(msg); err != nil {
			log.Printf("failed to write to session\tsession: %s\ttype: %s\terr: %s", session.id, msg.Type, err)
			return err
		}
	}
	return nil
}

// SendToPlayers writes msgs to every connected player of playerIds.
// Players without a session (the bot, or someone who just left)
// are skipped.
func (bsm *BattleshipSessionManager) SendToPlayers(playerIds []int64, msgs ...Message) {
	for _, playerId := range playerIds {
		session, err := bsm.FindPlayerSession(playerId)
		if err != nil {
			continue
		}
		_ = bsm.WriteToSessionConn(session, msgs...)
	}
}

func (bsm *BattleshipSessionManager) Broadcast(msgs ...Message) {
	bsm.mu.RLock()
	sessions := make([]*Session, 0, len(bsm.sessions))
	for _, session := range bsm.sessions {
		sessions = append(sessions, session)
	}
	bsm.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].createdAt.Before(sessions[j].createdAt) })
	for _, session := range sessions {
		_ = bsm.WriteToSessionConn(session, msgs...)
	}
}
