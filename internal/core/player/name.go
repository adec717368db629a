// Package player contains the pure business logic for player identity.
// This is part of the Functional Core - no I/O, only pure functions.
package player

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/example/demonlist/internal/core/demon"
)

// MaxResolveAttempts bounds how often a resolution retries after losing an insert race.
const MaxResolveAttempts = 3

// ErrInvalidName is matched by the ValidationError returned for blank player names.
var ErrInvalidName = errors.New("invalid player name")

// NormalizeName trims surrounding whitespace from a player name, keeping its casing.
// Blank names are rejected.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &demon.ValidationError{
			Code:    demon.CodeInvalidName,
			Field:   "player",
			Message: "player name must not be empty",
			Err:     ErrInvalidName,
		}
	}
	return trimmed, nil
}

// NameKey returns the case-folded form of name that identifies a player.
// Storage keeps it next to the display name and enforces its uniqueness, so
// every store compares names by the same Unicode folding.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// StoredName is a player name as persisted together with its key.
type StoredName struct {
	ID   int64
	Name string
	Key  string
}

// CheckNames returns one message per stored key that does not match its name
// and one per group of players whose names fold to the same key.
func CheckNames(names []StoredName) []string {
	var problems []string
	byKey := make(map[string][]StoredName)
	var keys []string
	for _, n := range names {
		key := NameKey(n.Name)
		if n.Key != key {
			problems = append(problems, fmt.Sprintf("player %d (%q) has stale name key %q", n.ID, n.Name, n.Key))
		}
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], n)
	}

	for _, key := range keys {
		if group := byKey[key]; len(group) > 1 {
			problems = append(problems, fmt.Sprintf("player name %q is held by %d players", key, len(group)))
		}
	}
	return problems
}

// ConflictError is returned when every resolution attempt lost a uniqueness race.
type ConflictError struct {
	Name     string
	Attempts int
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("could not resolve player %q after %d attempts: %v", e.Name, e.Attempts, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
