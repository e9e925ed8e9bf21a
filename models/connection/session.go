package connection

import (
	"encoding/json"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

type ConnectionHandler interface {
	writeToConnWithRetry(msg Message) error
	onConnErr(err error) uint8
}

// Session is one websocket connection, which is one player.
// gorilla/websocket allows a single concurrent writer, so all
// writes go through writeMu.
type Session struct {
	id        string
	playerId  int64
	name      string
	conn      *websocket.Conn
	writeMu   sync.Mutex
	mu        sync.RWMutex
	createdAt time.Time
}

func NewSession(id string, playerId int64, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		playerId:  playerId,
		conn:      conn,
		createdAt: time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) PlayerId() int64 {
	return s.playerId
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}

// Read blocks until the next message arrives on the connection.
func (s *Session) Read() (Message, error) {
	var msg Message

	_, payload, err := s.conn.ReadMessage()
	if err != nil {
		return msg, NewConnErr(s.onConnErr(err)).AddDesc(err.Error())
	}

	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, NewConnErr(ConnLoopContinue).AddDesc("invalid message envelope: " + err.Error())
	}
	return msg, nil
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	/*
		CloseUnsupportedData (1003) and CloseInvalidFramePayloadData (1007)
		mean the client is most likely not ours. Breaking instead of
		reading more invalid payloads.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseAbnormalClosure) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes msg to the connection of this session, retrying
// transient failures with a linear backoff.
func (s *Session) writeToConnWithRetry(msg Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8
	for {
		err := s.conn.WriteJSON(msg)
		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Printf("writing json failed to ws [%s]; retrying... (retry no. %d)\n", s.conn.RemoteAddr().String(), retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue
			}
			log.Printf("max retries reached for writing to ws [%s]:%s", s.conn.RemoteAddr().String(), err)
			return NewConnErr(ConnLoopBreak).AddDesc(err.Error())

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

var _ ConnectionHandler = (*Session)(nil)
