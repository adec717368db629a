package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/demonlist/internal/ports/secondary"
)

func TestIntegrityService_CheckIntegrity(t *testing.T) {
	tests := []struct {
		name         string
		report       *secondary.IntegrityReport
		wantProblems int
	}{
		{
			name:   "healthy",
			report: &secondary.IntegrityReport{DemonCount: 3, MinPosition: 1, MaxPosition: 3, DistinctPositions: 3},
		},
		{
			name:         "gap and duplicate player",
			report: &secondary.IntegrityReport{DemonCount: 3, MinPosition: 1, MaxPosition: 4, DistinctPositions: 3, Players: []*secondary.PlayerRecord{
				{ID: 1, Name: "Alice", NameKey: "alice"},
				{ID: 2, Name: "alice", NameKey: "alice"},
			}},
			wantProblems: 2,
		},
		{
			name: "accented names folding together behind stale keys",
			report: &secondary.IntegrityReport{DemonCount: 1, MinPosition: 1, MaxPosition: 1, DistinctPositions: 1, Players: []*secondary.PlayerRecord{
				{ID: 1, Name: "Émile", NameKey: "émile"},
				{ID: 2, Name: "ÉMILE", NameKey: "Émile"},
			}},
			// one stale key plus one shared folded name
			wantProblems: 2,
		},
		{
			name: "distinct players",
			report: &secondary.IntegrityReport{DemonCount: 1, MinPosition: 1, MaxPosition: 1, DistinctPositions: 1, Players: []*secondary.PlayerRecord{
				{ID: 1, Name: "Émile", NameKey: "émile"},
				{ID: 2, Name: "Emile", NameKey: "emile"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewIntegrityService(&mockTransactor{}, &mockCheckRepository{report: tt.report})
			got, err := service.CheckIntegrity(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Problems) != tt.wantProblems {
				t.Errorf("expected %d problems, got %v", tt.wantProblems, got.Problems)
			}
			if got.Demons != tt.report.DemonCount {
				t.Errorf("expected %d demons, got %d", tt.report.DemonCount, got.Demons)
			}
		})
	}
}

func TestIntegrityService_StorageError(t *testing.T) {
	storageErr := errors.New("no such table: demons")
	service := NewIntegrityService(&mockTransactor{}, &mockCheckRepository{err: storageErr})
	if _, err := service.CheckIntegrity(context.Background()); !errors.Is(err, storageErr) {
		t.Errorf("expected storage error, got %v", err)
	}
}
