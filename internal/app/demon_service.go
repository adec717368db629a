package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	coredemon "github.com/example/demonlist/internal/core/demon"
	"github.com/example/demonlist/internal/logging"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

// recordStatusApproved is the only record status shown on a demon.
const recordStatusApproved = "approved"

// ListSizes holds the section boundaries of the list.
type ListSizes struct {
	Main     int
	Extended int
}

// DemonServiceImpl implements the DemonService interface.
type DemonServiceImpl struct {
	transactor  secondary.Transactor
	demonRepo   secondary.DemonRepository
	creatorRepo secondary.CreatorRepository
	recordRepo  secondary.RecordRepository
	creator     *DemonCreator
	resolver    *PlayerResolver
	videos      secondary.VideoValidator
	sizes       ListSizes
	logger      *zap.Logger
}

// NewDemonService creates a new DemonService with injected dependencies.
func NewDemonService(
	transactor secondary.Transactor,
	demonRepo secondary.DemonRepository,
	creatorRepo secondary.CreatorRepository,
	recordRepo secondary.RecordRepository,
	creator *DemonCreator,
	resolver *PlayerResolver,
	videos secondary.VideoValidator,
	sizes ListSizes,
	logger *zap.Logger,
) *DemonServiceImpl {
	return &DemonServiceImpl{
		transactor:  transactor,
		demonRepo:   demonRepo,
		creatorRepo: creatorRepo,
		recordRepo:  recordRepo,
		creator:     creator,
		resolver:    resolver,
		videos:      videos,
		sizes:       sizes,
		logger:      logger,
	}
}

// CreateDemon places a new demon on the list in its own transaction.
func (s *DemonServiceImpl) CreateDemon(ctx context.Context, req primary.DemonSubmission) (*primary.FullDemon, error) {
	demon, err := runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.FullDemon, error) {
		return s.creator.CreateFrom(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx, s.logger).Info("demon created",
		zap.Int64("id", demon.Demon.ID),
		zap.Int("position", demon.Demon.Position),
	)
	return demon, nil
}

// GetDemon retrieves a demon with its creators and approved records.
func (s *DemonServiceImpl) GetDemon(ctx context.Context, demonID int64) (*primary.FullDemon, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.FullDemon, error) {
		record, err := s.demonRepo.GetByID(ctx, tx, demonID)
		if err != nil {
			return nil, err
		}
		return s.loadFull(ctx, tx, record)
	})
}

// GetDemonByPosition retrieves the demon at a list position.
func (s *DemonServiceImpl) GetDemonByPosition(ctx context.Context, position int) (*primary.FullDemon, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.FullDemon, error) {
		record, err := s.demonRepo.GetByPosition(ctx, tx, position)
		if err != nil {
			return nil, err
		}
		return s.loadFull(ctx, tx, record)
	})
}

// ListDemons retrieves demons ordered by position, tagged with their section.
func (s *DemonServiceImpl) ListDemons(ctx context.Context, filters primary.DemonFilters) ([]*primary.ListedDemon, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) ([]*primary.ListedDemon, error) {
		records, err := s.demonRepo.List(ctx, tx, secondary.DemonFilters{
			NameContains:  strings.TrimSpace(filters.Name),
			IncludeHidden: filters.IncludeHidden,
			After:         filters.After,
			Limit:         filters.Limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list demons: %w", err)
		}

		listed := make([]*primary.ListedDemon, 0, len(records))
		for _, r := range records {
			listed = append(listed, &primary.ListedDemon{
				MinimalDemon: toMinimalDemon(r),
				Publisher:    primary.Player{ID: r.PublisherID, Name: r.PublisherName},
				Hidden:       r.Hidden,
				Section:      coredemon.Section(r.Position, s.sizes.Main, s.sizes.Extended),
			})
		}
		return listed, nil
	})
}

// UpdateDemon applies the non-nil fields of req. Position is never changed.
func (s *DemonServiceImpl) UpdateDemon(ctx context.Context, req primary.UpdateDemonRequest) (*primary.FullDemon, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.FullDemon, error) {
		record, err := s.demonRepo.GetByID(ctx, tx, req.DemonID)
		if err != nil {
			return nil, err
		}

		if req.Name != nil {
			name, err := coredemon.ValidateName(*req.Name)
			if err != nil {
				return nil, err
			}
			record.Name = name
		}

		if req.FPS != nil {
			record.FPS = strings.TrimSpace(*req.FPS)
		}

		if req.Video != nil {
			record.Video = ""
			if raw := strings.TrimSpace(*req.Video); raw != "" {
				video, err := s.videos.Validate(raw)
				if err != nil {
					return nil, coredemon.InvalidVideo("video", err)
				}
				record.Video = video
			}
		}

		if req.Requirement != nil {
			if err := coredemon.ValidateRequirement(*req.Requirement); err != nil {
				return nil, err
			}
			record.Requirement = *req.Requirement
		}

		if req.Hidden != nil {
			record.Hidden = *req.Hidden
		}

		if req.Verifier != nil {
			verifier, err := s.resolver.ResolveOrCreate(ctx, tx, *req.Verifier)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve verifier: %w", err)
			}
			record.VerifierID = verifier.ID
		}

		if req.Publisher != nil {
			publisher, err := s.resolver.ResolveOrCreate(ctx, tx, *req.Publisher)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve publisher: %w", err)
			}
			record.PublisherID = publisher.ID
		}

		if err := s.demonRepo.Update(ctx, tx, record); err != nil {
			return nil, err
		}

		updated, err := s.demonRepo.GetByID(ctx, tx, record.ID)
		if err != nil {
			return nil, err
		}
		return s.loadFull(ctx, tx, updated)
	})
}

// AddCreator links a player, resolved by name, to a demon.
func (s *DemonServiceImpl) AddCreator(ctx context.Context, demonID int64, playerName string) (*primary.Player, error) {
	return runInTx(ctx, s.transactor, func(tx secondary.Tx) (*primary.Player, error) {
		if _, err := s.demonRepo.GetByID(ctx, tx, demonID); err != nil {
			return nil, err
		}
		creator, err := s.resolver.ResolveOrCreate(ctx, tx, playerName)
		if err != nil {
			return nil, err
		}
		if err := s.creatorRepo.Add(ctx, tx, demonID, creator.ID); err != nil {
			return nil, err
		}
		return toPlayer(creator), nil
	})
}

// RemoveCreator unlinks a player from a demon.
func (s *DemonServiceImpl) RemoveCreator(ctx context.Context, demonID, playerID int64) error {
	_, err := runInTx(ctx, s.transactor, func(tx secondary.Tx) (struct{}, error) {
		removed, err := s.creatorRepo.Remove(ctx, tx, demonID, playerID)
		if err != nil {
			return struct{}{}, err
		}
		if removed == 0 {
			return struct{}{}, fmt.Errorf("player %d is not a creator of demon %d: %w", playerID, demonID, secondary.ErrNotFound)
		}
		return struct{}{}, nil
	})
	return err
}

func (s *DemonServiceImpl) loadFull(ctx context.Context, tx secondary.Tx, record *secondary.DemonRecord) (*primary.FullDemon, error) {
	creators, err := s.creatorRepo.ListByDemon(ctx, tx, record.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListByDemon(ctx, tx, record.ID, recordStatusApproved)
	if err != nil {
		return nil, err
	}
	return &primary.FullDemon{
		Demon:    toDemon(record),
		Creators: toPlayers(creators),
		Records:  toRecords(records),
	}, nil
}

var _ primary.DemonService = (*DemonServiceImpl)(nil)
