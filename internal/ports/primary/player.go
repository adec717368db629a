package primary

import "context"

// PlayerService defines the primary port for player operations.
type PlayerService interface {
	// ResolvePlayer returns the player with the given name, creating it if absent.
	ResolvePlayer(ctx context.Context, name string) (*Player, error)

	// GetPlayer retrieves a player by ID.
	GetPlayer(ctx context.Context, playerID int64) (*Player, error)

	// GetPlayerByName retrieves a player by name, ignoring case.
	GetPlayerByName(ctx context.Context, name string) (*Player, error)

	// ListPlayers retrieves players matching the filters.
	ListPlayers(ctx context.Context, filters PlayerFilters) ([]*Player, error)
}

// PlayerFilters contains filter options for listing players.
type PlayerFilters struct {
	Name  string
	Limit int
}

// Player represents a player at the port boundary.
type Player struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Banned bool   `json:"banned"`
}
