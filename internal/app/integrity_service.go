package app

import (
	"context"

	coredemon "github.com/example/demonlist/internal/core/demon"
	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

// IntegrityServiceImpl implements the IntegrityService interface.
type IntegrityServiceImpl struct {
	transactor secondary.Transactor
	checkRepo  secondary.CheckRepository
}

// NewIntegrityService creates a new IntegrityService.
func NewIntegrityService(transactor secondary.Transactor, checkRepo secondary.CheckRepository) *IntegrityServiceImpl {
	return &IntegrityServiceImpl{transactor: transactor, checkRepo: checkRepo}
}

// CheckIntegrity verifies that positions are contiguous and unique, that every
// stored name key matches its name, and that no two players fold to one name.
func (s *IntegrityServiceImpl) CheckIntegrity(ctx context.Context) (*primary.IntegrityReport, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.IntegrityReport, error) {
		stored, err := s.checkRepo.Integrity(ctx, tx)
		if err != nil {
			return nil, err
		}

		problems := coredemon.CheckListShape(coredemon.ListShape{
			Count:    stored.DemonCount,
			Min:      stored.MinPosition,
			Max:      stored.MaxPosition,
			Distinct: stored.DistinctPositions,
		})
		names := make([]coreplayer.StoredName, 0, len(stored.Players))
		for _, p := range stored.Players {
			names = append(names, coreplayer.StoredName{ID: p.ID, Name: p.Name, Key: p.NameKey})
		}
		problems = append(problems, coreplayer.CheckNames(names)...)

		return &primary.IntegrityReport{Demons: stored.DemonCount, Problems: problems}, nil
	})
}

var _ primary.IntegrityService = (*IntegrityServiceImpl)(nil)
