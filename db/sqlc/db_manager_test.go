package sqlc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"
)

var testIpNet = net.IPNet{
	IP:   net.ParseIP("192.168.1.10").To4(),
	Mask: net.CIDRMask(32, 32),
}

func newTestDbManager(t *testing.T) (*DbManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db), testIpNet), mock
}

func TestRecordWin(t *testing.T) {
	dm, mock := newTestDbManager(t)

	mock.ExpectExec(`INSERT INTO winners \(name, wins\) VALUES \(\$1, 1\)`).
		WithArgs("ann").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := dm.RecordWin(context.Background(), "ann"); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestWinners(t *testing.T) {
	dm, mock := newTestDbManager(t)

	mock.ExpectQuery(`SELECT name, wins FROM winners`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "wins"}).AddRow("bob", 3).AddRow("ann", 1))

	winners, err := dm.Winners(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	expected := []Winner{{Name: "bob", Wins: 3}, {Name: "ann", Wins: 1}}
	if len(winners) != len(expected) {
		t.Fatalf("expected: %+v\tgot: %+v", expected, winners)
	}
	for i := range expected {
		if winners[i] != expected[i] {
			t.Fatalf("expected: %+v\tgot: %+v", expected, winners)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestWinnersQueryError(t *testing.T) {
	dm, mock := newTestDbManager(t)

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(`SELECT name, wins FROM winners`).WillReturnError(dbErr)

	if _, err := dm.Winners(context.Background()); !errors.Is(err, dbErr) {
		t.Fatalf("expected: %v\tgot: %v", dbErr, err)
	}
}

func TestAnalytics(t *testing.T) {
	dm, mock := newTestDbManager(t)
	serverIp := pqtype.Inet{IPNet: testIpNet, Valid: true}

	if got := dm.ServerIp(); !got.Valid || got.IPNet.String() != "192.168.1.10/32" {
		t.Fatalf("expected server ip: %s\tgot: %s", "192.168.1.10/32", got.IPNet.String())
	}

	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, games_created\)`).
		WithArgs(serverIp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO game_server_analytics \(server_ip, single_plays\)`).
		WithArgs(serverIp).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT games_created FROM game_server_analytics WHERE server_ip = \$1`).
		WithArgs(serverIp).
		WillReturnRows(sqlmock.NewRows([]string{"games_created"}).AddRow(1))

	ctx := context.Background()
	if err := dm.RecordGameCreated(ctx); err != nil {
		t.Fatal(err)
	}
	if err := dm.RecordSinglePlay(ctx); err != nil {
		t.Fatal(err)
	}
	gamesCreated, err := dm.GamesCreated(ctx)
	if err != nil {
		t.Fatalf("failed to fetch created games: %v", err)
	}
	if gamesCreated != 1 {
		t.Fatalf("expected number of created games: %d\tgot: %d", 1, gamesCreated)
	}

	if err = mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
