// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is wrapped by repositories when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped by repositories when a write loses a uniqueness race.
	ErrConflict = errors.New("conflict")
)

// Tx is an open unit of work. Repositories only accept transactions produced by
// the Transactor of the same adapter.
type Tx interface {
	Commit() error
	Rollback() error
}

// Transactor opens units of work against the list store.
// Every transaction it hands out holds the list-wide write lock until it ends,
// so reads taken through it stay valid for the mutations they inform.
type Transactor interface {
	Begin(ctx context.Context) (Tx, error)
}

// DemonRepository defines the secondary port for demon persistence.
type DemonRepository interface {
	// Count returns the number of demons on the list.
	Count(ctx context.Context, tx Tx) (int, error)

	// ShiftOpen moves every demon at position >= from down by one.
	ShiftOpen(ctx context.Context, tx Tx, from int) error

	// ShiftClose moves every demon at position > removed up by one.
	ShiftClose(ctx context.Context, tx Tx, removed int) error

	// Create persists a new demon and sets its ID.
	Create(ctx context.Context, tx Tx, demon *DemonRecord) error

	// GetByID retrieves a demon by its ID.
	GetByID(ctx context.Context, tx Tx, id int64) (*DemonRecord, error)

	// GetByPosition retrieves the demon at the given position.
	GetByPosition(ctx context.Context, tx Tx, position int) (*DemonRecord, error)

	// List retrieves demons ordered by position.
	List(ctx context.Context, tx Tx, filters DemonFilters) ([]*DemonRecord, error)

	// Update writes every column of the demon except its position.
	Update(ctx context.Context, tx Tx, demon *DemonRecord) error
}

// DemonRecord represents a demon as stored in persistence.
// VerifierName and PublisherName are filled on reads only.
type DemonRecord struct {
	ID            int64
	Position      int
	Name          string
	Requirement   int
	Video         string // Empty string means null
	FPS           string // Empty string means null
	VerifierID    int64
	VerifierName  string
	PublisherID   int64
	PublisherName string
	LevelID       int64 // Zero means null
	Hidden        bool
}

// DemonFilters contains filter options for listing demons.
type DemonFilters struct {
	NameContains  string // case-insensitive substring
	IncludeHidden bool
	After         int // only positions greater than this
	Limit         int
}

// PlayerRepository defines the secondary port for player persistence.
type PlayerRepository interface {
	// GetByID retrieves a player by its ID.
	GetByID(ctx context.Context, tx Tx, id int64) (*PlayerRecord, error)

	// GetByName retrieves a player by name, compared case-insensitively.
	GetByName(ctx context.Context, tx Tx, name string) (*PlayerRecord, error)

	// Create inserts a player with the given display name.
	// Returns an error wrapping ErrConflict when the name is already taken,
	// leaving tx usable.
	Create(ctx context.Context, tx Tx, name string) (*PlayerRecord, error)

	// List retrieves players ordered by ID.
	List(ctx context.Context, tx Tx, filters PlayerFilters) ([]*PlayerRecord, error)
}

// PlayerRecord represents a player as stored in persistence.
type PlayerRecord struct {
	ID      int64
	Name    string
	NameKey string // stored fold key; only populated by integrity reads
	Banned  bool
}

// PlayerFilters contains filter options for listing players.
type PlayerFilters struct {
	NameContains string
	Limit        int
}

// CreatorRepository defines the secondary port for demon/player creator links.
type CreatorRepository interface {
	// Add links a player to a demon as creator. Duplicates are kept.
	Add(ctx context.Context, tx Tx, demonID, playerID int64) error

	// Remove deletes every link between the demon and the player and
	// returns how many were removed.
	Remove(ctx context.Context, tx Tx, demonID, playerID int64) (int, error)

	// ListByDemon returns the creators of a demon in link order.
	ListByDemon(ctx context.Context, tx Tx, demonID int64) ([]*PlayerRecord, error)
}

// CompletionRecord represents a player's record on a demon.
type CompletionRecord struct {
	ID         int64
	Progress   int
	Video      string
	Status     string // approved, submitted, rejected, under_consideration
	PlayerID   int64
	PlayerName string
	DemonID    int64
}

// RecordRepository defines the secondary port for reading records.
type RecordRepository interface {
	// ListByDemon returns records on a demon with the given status,
	// best progress first. Empty status matches all.
	ListByDemon(ctx context.Context, tx Tx, demonID int64, status string) ([]*CompletionRecord, error)
}

// IntegrityReport summarises the list and player invariants as seen by storage.
type IntegrityReport struct {
	DemonCount        int
	MinPosition       int
	MaxPosition       int
	DistinctPositions int
	Players           []*PlayerRecord // every player with its stored name key, by ID
}

// CheckRepository defines the secondary port for storage integrity checks.
type CheckRepository interface {
	Integrity(ctx context.Context, tx Tx) (*IntegrityReport, error)
}
