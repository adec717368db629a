// Package demon contains the pure business logic for demon list operations.
// Guards are pure functions that evaluate preconditions without side effects.
package demon

import "fmt"

// Requirement bounds and the value every new demon starts with.
const (
	MinRequirement     = 0
	MaxRequirement     = 100
	InitialRequirement = 100
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// PlacementContext provides context for placing a new demon on the list.
type PlacementContext struct {
	Requested int
	ListSize  int // demons currently on the list
}

// MaxPlacement returns the highest position a new demon may take.
func MaxPlacement(listSize int) int {
	return listSize + 1
}

// CanPlaceDemon evaluates whether a new demon can be inserted at the requested position.
// Rules:
// - Position must be at least 1
// - Position must be at most ListSize+1 (appending is allowed, gaps are not)
func CanPlaceDemon(ctx PlacementContext) GuardResult {
	if ctx.Requested < 1 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("demon position must be at least 1 (got %d)", ctx.Requested),
		}
	}

	if maxPos := MaxPlacement(ctx.ListSize); ctx.Requested > maxPos {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("demon position must be at most %d (got %d)", maxPos, ctx.Requested),
		}
	}

	return GuardResult{Allowed: true}
}

// ValidatePlacement runs CanPlaceDemon and converts a refusal into a ValidationError.
func ValidatePlacement(ctx PlacementContext) error {
	if result := CanPlaceDemon(ctx); !result.Allowed {
		return &ValidationError{
			Code:    CodeInvalidPosition,
			Field:   "position",
			Message: result.Reason,
			Data:    map[string]any{"maximal": MaxPlacement(ctx.ListSize)},
			Err:     ErrPositionOutOfRange,
		}
	}
	return nil
}

// CanSetRequirement evaluates whether a requirement value is acceptable.
func CanSetRequirement(requirement int) GuardResult {
	if requirement < MinRequirement || requirement > MaxRequirement {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("record requirement must be between %d and %d (got %d)", MinRequirement, MaxRequirement, requirement),
		}
	}
	return GuardResult{Allowed: true}
}
