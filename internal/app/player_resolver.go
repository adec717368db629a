package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/logging"
	"github.com/example/demonlist/internal/ports/secondary"
)

// PlayerResolver maps player names to player rows inside a caller's transaction.
type PlayerResolver struct {
	playerRepo secondary.PlayerRepository
	logger     *zap.Logger
}

// NewPlayerResolver creates a new PlayerResolver.
func NewPlayerResolver(playerRepo secondary.PlayerRepository, logger *zap.Logger) *PlayerResolver {
	return &PlayerResolver{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// ResolveOrCreate returns the player whose name matches name ignoring case,
// inserting one with the given casing when none exists. An insert that loses
// a uniqueness race is retried as a lookup.
func (r *PlayerResolver) ResolveOrCreate(ctx context.Context, tx secondary.Tx, name string) (*secondary.PlayerRecord, error) {
	normalized, err := coreplayer.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= coreplayer.MaxResolveAttempts; attempt++ {
		existing, err := r.playerRepo.GetByName(ctx, tx, normalized)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up player: %w", err)
		}

		created, err := r.playerRepo.Create(ctx, tx, normalized)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, secondary.ErrConflict) {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		lastErr = err
		logging.FromContext(ctx, r.logger).Debug("player insert lost a race, retrying lookup",
			zap.String("player", normalized),
			zap.Int("attempt", attempt),
		)
	}

	return nil, &coreplayer.ConflictError{
		Name:     normalized,
		Attempts: coreplayer.MaxResolveAttempts,
		Err:      lastErr,
	}
}
