package sqlc

import (
	"context"
	"net"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager runs the queries the game server needs, each under
// QuerierCtxTimeout. Analytics rows are keyed by this server's ip.
type DbManager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewDbManager(queries Querier, serverIpNet net.IPNet) *DbManager {
	return &DbManager{
		queries:  queries,
		serverIp: pqtype.Inet{IPNet: serverIpNet, Valid: true},
	}
}

func (d *DbManager) ServerIp() pqtype.Inet {
	return d.serverIp
}

func (d *DbManager) RecordWin(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return d.queries.IncrementWins(ctx, name)
}

func (d *DbManager) Winners(ctx context.Context) ([]Winner, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return d.queries.ListWinners(ctx)
}

func (d *DbManager) RecordGameCreated(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return d.queries.AnalyticsIncrementGamesCreatedCount(ctx, d.serverIp)
}

func (d *DbManager) RecordSinglePlay(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return d.queries.AnalyticsIncrementSinglePlayCount(ctx, d.serverIp)
}

func (d *DbManager) GamesCreated(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return d.queries.AnalyticsGetGamesCreatedCount(ctx, d.serverIp)
}
