package app

import (
	"context"
	"fmt"
	"strings"

	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

// PlayerServiceImpl implements the PlayerService interface.
type PlayerServiceImpl struct {
	transactor secondary.Transactor
	playerRepo secondary.PlayerRepository
	resolver   *PlayerResolver
}

// NewPlayerService creates a new PlayerService with injected dependencies.
func NewPlayerService(transactor secondary.Transactor, playerRepo secondary.PlayerRepository, resolver *PlayerResolver) *PlayerServiceImpl {
	return &PlayerServiceImpl{
		transactor: transactor,
		playerRepo: playerRepo,
		resolver:   resolver,
	}
}

// ResolvePlayer returns the player with the given name, creating it if absent.
func (s *PlayerServiceImpl) ResolvePlayer(ctx context.Context, name string) (*primary.Player, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.Player, error) {
		record, err := s.resolver.ResolveOrCreate(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		return toPlayer(record), nil
	})
}

// GetPlayer retrieves a player by ID.
func (s *PlayerServiceImpl) GetPlayer(ctx context.Context, playerID int64) (*primary.Player, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.Player, error) {
		record, err := s.playerRepo.GetByID(ctx, tx, playerID)
		if err != nil {
			return nil, err
		}
		return toPlayer(record), nil
	})
}

// GetPlayerByName retrieves a player by name, ignoring case.
func (s *PlayerServiceImpl) GetPlayerByName(ctx context.Context, name string) (*primary.Player, error) {
	normalized, err := coreplayer.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.Player, error) {
		record, err := s.playerRepo.GetByName(ctx, tx, normalized)
		if err != nil {
			return nil, err
		}
		return toPlayer(record), nil
	})
}

// ListPlayers retrieves players matching the filters.
func (s *PlayerServiceImpl) ListPlayers(ctx context.Context, filters primary.PlayerFilters) ([]*primary.Player, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) ([]*primary.Player, error) {
		records, err := s.playerRepo.List(ctx, tx, secondary.PlayerFilters{
			NameContains: strings.TrimSpace(filters.Name),
			Limit:        filters.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list players: %w", err)
		}
		return toPlayers(records), nil
	})
}

var _ primary.PlayerService = (*PlayerServiceImpl)(nil)
