package primary

import "context"

// DemonService defines the primary port for demon list operations.
type DemonService interface {
	// CreateDemon places a new demon on the list in its own transaction.
	CreateDemon(ctx context.Context, req DemonSubmission) (*FullDemon, error)

	// GetDemon retrieves a demon with its creators and approved records.
	GetDemon(ctx context.Context, demonID int64) (*FullDemon, error)

	// GetDemonByPosition retrieves the demon at a list position.
	GetDemonByPosition(ctx context.Context, position int) (*FullDemon, error)

	// ListDemons retrieves demons ordered by position.
	ListDemons(ctx context.Context, filters DemonFilters) ([]*ListedDemon, error)

	// UpdateDemon edits a demon's fields. Position is not editable.
	UpdateDemon(ctx context.Context, req UpdateDemonRequest) (*FullDemon, error)

	// AddCreator links a player, resolved by name, to a demon.
	AddCreator(ctx context.Context, demonID int64, playerName string) (*Player, error)

	// RemoveCreator unlinks a player from a demon.
	RemoveCreator(ctx context.Context, demonID, playerID int64) error
}

// DemonSubmission contains parameters for creating a demon.
type DemonSubmission struct {
	Name      string   `json:"name"`
	Position  int      `json:"position"`
	FPS       *string  `json:"fps,omitempty"`
	Verifier  string   `json:"verifier"`
	Publisher string   `json:"publisher"`
	Creators  []string `json:"creators"`
	Video     *string  `json:"video,omitempty"`
}

// UpdateDemonRequest contains the fields to change on a demon.
// Nil fields are left untouched; an empty FPS or Video clears the value.
type UpdateDemonRequest struct {
	DemonID     int64   `json:"-"`
	Name        *string `json:"name,omitempty"`
	FPS         *string `json:"fps,omitempty"`
	Video       *string `json:"video,omitempty"`
	Requirement *int    `json:"requirement,omitempty"`
	Hidden      *bool   `json:"hidden,omitempty"`
	Verifier    *string `json:"verifier,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
}

// DemonFilters contains filter options for listing demons.
type DemonFilters struct {
	Name          string
	IncludeHidden bool
	After         int
	Limit         int
}

// MinimalDemon identifies a demon and its place on the list.
type MinimalDemon struct {
	ID       int64  `json:"id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
}

// Demon is a demon with every stored attribute resolved.
type Demon struct {
	MinimalDemon
	Requirement int     `json:"requirement"`
	FPS         *string `json:"fps"`
	Video       *string `json:"video"`
	Publisher   Player  `json:"publisher"`
	Verifier    Player  `json:"verifier"`
	LevelID     *int64  `json:"level_id"`
	Hidden      bool    `json:"hidden"`
}

// FullDemon bundles a demon with its creators and records.
type FullDemon struct {
	Demon    Demon     `json:"demon"`
	Creators []*Player `json:"creators"`
	Records  []*Record `json:"records"`
}

// ListedDemon is a list row: the demon, its publisher and its list section.
type ListedDemon struct {
	MinimalDemon
	Publisher Player `json:"publisher"`
	Hidden    bool   `json:"hidden"`
	Section   string `json:"section"`
}

// Record is a player's completion of a demon.
type Record struct {
	ID       int64   `json:"id"`
	Progress int     `json:"progress"`
	Video    *string `json:"video"`
	Status   string  `json:"status"`
	Player   Player  `json:"player"`
}
