package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/saeidalz13/seabattle-backend/db/sqlc"
	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
	mc "github.com/saeidalz13/seabattle-backend/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort     int           = 8000
	shutdownTimeout time.Duration = time.Second * 5
)

type Server struct {
	port        int
	stage       string
	botMinDelay time.Duration
	botMaxDelay time.Duration

	Router         *mux.Router
	SessionManager mc.SessionManager
	GameManager    mb.GameManager
	DbManager      *sqlc.DbManager
}

type Option func(*Server) error

func NewServer(sessionManager mc.SessionManager, gameManager mb.GameManager, dbManager *sqlc.DbManager, optFuncs ...Option) *Server {
	server := Server{
		port:           defaultPort,
		stage:          StageDev,
		botMinDelay:    defaultBotMinDelay,
		botMaxDelay:    defaultBotMaxDelay,
		SessionManager: sessionManager,
		GameManager:    gameManager,
		DbManager:      dbManager,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}

	rp := NewRequestProcessor(sessionManager, gameManager, dbManager, newBotScheduler(server.botMinDelay, server.botMaxDelay))

	server.Router = mux.NewRouter()
	server.Router.Handle("/battleship", rp).Methods(http.MethodGet)
	server.Router.HandleFunc("/winners", server.handleWinners).Methods(http.MethodGet)
	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return cerr.ErrInvalidStage(stage)
		}
		s.stage = stage
		return nil
	}
}

// WithBotDelay sets the range the bot waits in before each attack.
func WithBotDelay(minDelay, maxDelay time.Duration) Option {
	return func(s *Server) error {
		if minDelay < 0 || maxDelay < minDelay {
			return errors.New("bot delay range must satisfy 0 <= min <= max")
		}
		s.botMinDelay = minDelay
		s.botMaxDelay = maxDelay
		return nil
	}
}

func (s *Server) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(s.port)
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Router,
		ReadHeaderTimeout: time.Second * 5,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening to port %d\tstage: %s", s.port, s.stage)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := s.DbManager.Winners(r.Context())
	if err != nil {
		log.Println("failed to fetch winners:", err)
		http.Error(w, "could not fetch winners", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(respWinners(winners)); err != nil {
		log.Println("failed to encode winners:", err)
	}
}

func respWinners(winners []sqlc.Winner) []mc.RespWinner {
	resp := make([]mc.RespWinner, 0, len(winners))
	for _, winner := range winners {
		resp = append(resp, mc.RespWinner{Name: winner.Name, Wins: int64(winner.Wins)})
	}
	return resp
}
