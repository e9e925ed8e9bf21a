package error

import (
	"errors"
	"fmt"
)

// Kinds of failures. Constructors below wrap one of these
// so callers can match with errors.Is.
var (
	ErrGameFinished       = errors.New("game already finished")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrInvalidShip        = errors.New("invalid ship")
	ErrPlacementExhausted = errors.New("random ship placement failed")
	ErrNoFreePosition     = errors.New("no free position left")
	ErrInvalidTransition  = errors.New("invalid game state transition")
	ErrOpponentAbsent     = errors.New("opponent absent")
	ErrGameNotFound       = errors.New("game not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrUnknownType        = errors.New("unknown message type")
	ErrUnregistered       = errors.New("player not registered")
)

func ErrGameAlreadyFinished(gameId int64) error {
	return fmt.Errorf("%w\tgame: %d", ErrGameFinished, gameId)
}

func ErrPlayerNotInGame(gameId, playerId int64) error {
	return fmt.Errorf("%w\tgame: %d\tplayer: %d", ErrInvalidPlayer, gameId, playerId)
}

func ErrShipLengthOutOfRange(length int) error {
	return fmt.Errorf("%w: length must be between 1 and 4, got: %d", ErrInvalidShip, length)
}

func ErrShipTypeMismatch(length int, shipType string) error {
	return fmt.Errorf("%w: type %q does not match length %d", ErrInvalidShip, shipType, length)
}

func ErrEmptyFleet(gameId, playerId int64) error {
	return fmt.Errorf("%w: fleet has no ships\tgame: %d\tplayer: %d", ErrInvalidShip, gameId, playerId)
}

func ErrRandomPlacementFailed(gameId, playerId int64, attempts int) error {
	return fmt.Errorf("%w after %d attempts\tgame: %d\tplayer: %d", ErrPlacementExhausted, attempts, gameId, playerId)
}

func ErrRandomAttackFailed(gameId, playerId int64) error {
	return fmt.Errorf("%w for random attack\tgame: %d\tplayer: %d", ErrNoFreePosition, gameId, playerId)
}

func ErrStateTransition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func ErrSurrenderWithoutOpponent(gameId int64) error {
	return fmt.Errorf("%w: cannot surrender before a second player joins\tgame: %d", ErrOpponentAbsent, gameId)
}

func ErrGameNotExists(gameId int64) error {
	return fmt.Errorf("%w, id: %d", ErrGameNotFound, gameId)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w, id: %s", ErrSessionNotFound, sessionId)
}

func ErrUnmarshalPayload(msgType string, err error) error {
	return fmt.Errorf("%w for type %s: %w", ErrInvalidPayload, msgType, err)
}

func ErrUnknownMessageType(msgType string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, msgType)
}

func ErrForeignPlayerIndex(sessionPlayer, indexPlayer int64) error {
	return fmt.Errorf("%w: session of player %d sent indexPlayer %d", ErrInvalidPlayer, sessionPlayer, indexPlayer)
}

func ErrUnregisteredPlayer(playerId int64) error {
	return fmt.Errorf("%w\tplayer: %d", ErrUnregistered, playerId)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("invalid type of development stage: %s", stage)
}
