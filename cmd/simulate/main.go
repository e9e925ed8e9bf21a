package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/urfave/cli/v3"

	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "play bot against bot games and print statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "games",
				Value:   100,
				Usage:   "number of games to play",
				Sources: cli.EnvVars("SIMULATE_GAMES"),
			},
			&cli.IntFlag{
				Name:    "board-size",
				Value:   mb.DefaultBoardSize,
				Usage:   "side length of the square boards",
				Sources: cli.EnvVars("BOARD_SIZE"),
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "seed of the random source, 0 picks a random one",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			games := cmd.Int("games")
			if games <= 0 {
				return fmt.Errorf("games must be positive, got: %d", games)
			}

			seed := uint64(cmd.Int("seed"))
			if seed == 0 {
				seed = rand.Uint64()
			}

			s, err := simulate(rand.New(rand.NewPCG(seed, seed)), games, cmd.Int("board-size"))
			if err != nil {
				return err
			}
			s.print(os.Stdout, seed)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalln(err)
	}
}

func (s stats) print(w io.Writer, seed uint64) {
	fmt.Fprintf(w, "seed:\t\t%d\n", seed)
	fmt.Fprintf(w, "games:\t\t%d\n", s.games)
	fmt.Fprintf(w, "first seat:\t%d wins\n", s.wins[0])
	fmt.Fprintf(w, "second seat:\t%d wins\n", s.wins[1])
	fmt.Fprintf(w, "attacks:\tavg %.1f\tmin %d\tmax %d\n", s.averageAttacks(), s.minAttacks, s.maxAttacks)
}
