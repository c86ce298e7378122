package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const bookKeyPrefix = "book:"

type MoveBook interface {
	Lookup(ctx context.Context, boardKey string) (entity.Position, bool, error)
	Store(ctx context.Context, boardKey string, pos entity.Position) error
}

type redisMoveBook struct {
	client *redis.Client
}

// NewMoveBook - remembers the move chosen for each position, keyed by entity.Board.Key.
func NewMoveBook(client *redis.Client) MoveBook {
	return &redisMoveBook{
		client: client,
	}
}

func (that *redisMoveBook) Lookup(ctx context.Context, boardKey string) (entity.Position, bool, error) {
	response, err := that.client.Get(ctx, bookKeyPrefix+boardKey).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Position{}, false, nil
	}

	if err != nil {
		return entity.Position{}, false, fmt.Errorf("failed to get book entry: %w", err)
	}

	var pos entity.Position
	if err = json.Unmarshal([]byte(response), &pos); err != nil {
		return entity.Position{}, false, fmt.Errorf("failed to unmarshal book entry: %w", err)
	}

	return pos, true, nil
}

func (that *redisMoveBook) Store(ctx context.Context, boardKey string, pos entity.Position) error {
	posJSON, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("could not marshal position: %w", err)
	}

	if err = that.client.Set(ctx, bookKeyPrefix+boardKey, posJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set book entry: %w", err)
	}

	return nil
}
