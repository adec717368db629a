package primary

import "context"

// IntegrityService defines the primary port for storage health checks.
type IntegrityService interface {
	// CheckIntegrity verifies the list and player invariants against storage.
	CheckIntegrity(ctx context.Context) (*IntegrityReport, error)
}

// IntegrityReport lists every invariant found broken. No problems means healthy.
type IntegrityReport struct {
	Demons   int      `json:"demons"`
	Problems []string `json:"problems"`
}
