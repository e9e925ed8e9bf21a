package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/saeidalz13/seabattle-backend/api"
	"github.com/saeidalz13/seabattle-backend/db"
	"github.com/saeidalz13/seabattle-backend/db/sqlc"
	"github.com/saeidalz13/seabattle-backend/internal/config"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
	mc "github.com/saeidalz13/seabattle-backend/models/connection"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}

	psql := db.MustConnectToDb(cfg.DatabaseUrl, cfg.MigrationDir)
	defer psql.Close()

	server := api.NewServer(
		mc.NewBattleshipSessionManager(),
		mb.NewBattleshipGameManager(mb.WithBoardSize(cfg.BoardSize)),
		sqlc.NewDbManager(sqlc.New(psql), api.ServerIpNet()),
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithBotDelay(cfg.BotMinDelay, cfg.BotMaxDelay),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
	log.Println("server stopped")
}
