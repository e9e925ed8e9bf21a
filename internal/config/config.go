package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	cerr "github.com/saeidalz13/seabattle-backend/internal/error"
	mb "github.com/saeidalz13/seabattle-backend/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage        string        `env:"STAGE" envDefault:"dev"`
	Port         int           `env:"PORT" envDefault:"8000"`
	DatabaseUrl  string        `env:"DATABASE_URL,required"`
	MigrationDir string        `env:"MIGRATION_DIR" envDefault:"file://db/migration"`
	BoardSize    int           `env:"BOARD_SIZE" envDefault:"10"`
	BotMinDelay  time.Duration `env:"BOT_MIN_DELAY" envDefault:"750ms"`
	BotMaxDelay  time.Duration `env:"BOT_MAX_DELAY" envDefault:"1500ms"`
}

// Load reads envFile unless STAGE is prod, then parses the
// environment into a Config. A missing envFile is not an error.
func Load(envFile string) (Config, error) {
	var cfg Config

	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
			log.Printf("env file not found, using process environment\tfile: %s", envFile)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Stage != StageProd && c.Stage != StageDev {
		return cerr.ErrInvalidStage(c.Stage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	// the standard kit is only guaranteed to fit from the classic board up
	if c.BoardSize < mb.DefaultBoardSize {
		return fmt.Errorf("board size too small for the standard fleet: %d", c.BoardSize)
	}
	if c.BotMinDelay < 0 || c.BotMaxDelay < c.BotMinDelay {
		return fmt.Errorf("invalid bot delay range: [%s, %s)", c.BotMinDelay, c.BotMaxDelay)
	}
	return nil
}
