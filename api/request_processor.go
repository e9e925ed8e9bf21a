package api

import (
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saeidalz13/seabattle-backend/db/sqlc"
	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
	mc "github.com/saeidalz13/seabattle-backend/models/connection"
)

var (
	upgrader = websocket.Upgrader{

		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	db             *sqlc.DbManager
	bot            *botScheduler
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	db *sqlc.DbManager,
	bot *botScheduler,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		db:             db,
		bot:            bot,
	}
}

// ServerIpNet returns the first non loopback IPv4 network of this
// host, which keys the analytics rows. Falls back to 127.0.0.1/32.
func ServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	log.Println("no external ipv4 address found, using loopback")
	return loopback
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	defer func() {
		session.Conn().Close()
		rp.sessionManager.TerminateSession(session.Id())

		if err := rp.handleDisconnect(session.PlayerId()); err != nil {
			log.Printf("cleanup after disconnect failed\tplayer: %d\terr: %s", session.PlayerId(), err)
		}
		log.Printf("session closed\tsession: %s\tplayer: %d", session.Id(), session.PlayerId())
	}()

sessionLoop:
	for {
		msg, err := session.Read()
		if err != nil {
			var connErr mc.ConnErr
			if errors.As(err, &connErr) && connErr.Code() == mc.ConnLoopContinue {
				log.Println(err)
				continue sessionLoop
			}
			break sessionLoop
		}

		if err := rp.dispatch(session, msg); err != nil {
			log.Printf("request ignored\tplayer: %d\ttype: %s\terr: %s", session.PlayerId(), msg.Type, err)
		}
	}
}

func (rp RequestProcessor) dispatch(session *mc.Session, msg mc.Message) error {
	switch msg.Type {
	case mc.TypeReg:
		var req mc.ReqReg
		if err := msg.DecodePayload(&req); err != nil {
			return err
		}
		return rp.handleReg(session, req)

	case mc.TypeCreateRoom:
		return rp.handleCreateRoom(session)

	case mc.TypeAddUserToRoom:
		var req mc.ReqAddUserToRoom
		if err := msg.DecodePayload(&req); err != nil {
			return err
		}
		return rp.handleAddUserToRoom(session, req)

	case mc.TypeSinglePlay:
		return rp.handleSinglePlay(session)

	case mc.TypeAddShips:
		var req mc.ReqAddShips
		if err := msg.DecodePayload(&req); err != nil {
			return err
		}
		if err := ownIndex(session, req.IndexPlayer); err != nil {
			return err
		}
		return rp.handleAddShips(session, req)

	case mc.TypeAttack:
		var req mc.ReqAttack
		if err := msg.DecodePayload(&req); err != nil {
			return err
		}
		if err := ownIndex(session, req.IndexPlayer); err != nil {
			return err
		}
		return rp.attack(req.GameId, session.PlayerId(), req.Position())

	case mc.TypeRandomAttack:
		var req mc.ReqRandomAttack
		if err := msg.DecodePayload(&req); err != nil {
			return err
		}
		if err := ownIndex(session, req.IndexPlayer); err != nil {
			return err
		}
		return rp.attack(req.GameId, session.PlayerId(), nil)

	default:
		return cerr.ErrUnknownMessageType(msg.Type)
	}
}

// A client may only act as the player its session belongs to.
func ownIndex(session *mc.Session, indexPlayer int64) error {
	if indexPlayer != session.PlayerId() {
		return cerr.ErrForeignPlayerIndex(session.PlayerId(), indexPlayer)
	}
	return nil
}
