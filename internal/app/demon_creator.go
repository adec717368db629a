package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	coredemon "github.com/example/demonlist/internal/core/demon"
	coreplayer "github.com/example/demonlist/internal/core/player"
	"github.com/example/demonlist/internal/logging"
	"github.com/example/demonlist/internal/ports/primary"
	"github.com/example/demonlist/internal/ports/secondary"
)

// DemonCreator places a submitted demon on the list within a caller-owned transaction.
type DemonCreator struct {
	demonRepo   secondary.DemonRepository
	creatorRepo secondary.CreatorRepository
	resolver    *PlayerResolver
	videos      secondary.VideoValidator
	logger      *zap.Logger
}

// NewDemonCreator creates a new DemonCreator.
func NewDemonCreator(
	demonRepo secondary.DemonRepository,
	creatorRepo secondary.CreatorRepository,
	resolver *PlayerResolver,
	videos secondary.VideoValidator,
	logger *zap.Logger,
) *DemonCreator {
	return &DemonCreator{
		demonRepo:   demonRepo,
		creatorRepo: creatorRepo,
		resolver:    resolver,
		videos:      videos,
		logger:      logger,
	}
}

// CreateFrom validates sub, opens its position, inserts the demon and links its
// creators, all through tx. It never commits or rolls back: on error the caller
// must abort tx, since the shift may already have run.
//
// Validation failures happen before any write, so tx is untouched when they
// are returned.
func (c *DemonCreator) CreateFrom(ctx context.Context, tx secondary.Tx, sub primary.DemonSubmission) (*primary.FullDemon, error) {
	if tx == nil {
		panic("DemonCreator.CreateFrom called without a transaction")
	}

	logging.FromContext(ctx, c.logger).Info("creating demon",
		zap.String("name", sub.Name),
		zap.Int("position", sub.Position),
		zap.String("verifier", sub.Verifier),
		zap.String("publisher", sub.Publisher),
		zap.Strings("creators", sub.Creators),
		zap.Stringp("video", sub.Video),
	)

	name, err := coredemon.ValidateName(sub.Name)
	if err != nil {
		return nil, err
	}

	var video string
	if sub.Video != nil {
		video, err = c.videos.Validate(*sub.Video)
		if err != nil {
			return nil, coredemon.InvalidVideo("video", err)
		}
	}

	count, err := c.demonRepo.Count(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to count demons: %w", err)
	}
	if err := coredemon.ValidatePlacement(coredemon.PlacementContext{Requested: sub.Position, ListSize: count}); err != nil {
		return nil, err
	}
	if err := validateParticipants(sub); err != nil {
		return nil, err
	}

	publisher, err := c.resolver.ResolveOrCreate(ctx, tx, sub.Publisher)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve publisher: %w", err)
	}
	verifier, err := c.resolver.ResolveOrCreate(ctx, tx, sub.Verifier)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve verifier: %w", err)
	}

	if err := c.demonRepo.ShiftOpen(ctx, tx, sub.Position); err != nil {
		return nil, fmt.Errorf("failed to open position %d: %w", sub.Position, err)
	}

	record := &secondary.DemonRecord{
		Name:          name,
		Position:      sub.Position,
		Requirement:   coredemon.InitialRequirement,
		Video:         video,
		FPS:           derefString(sub.FPS),
		VerifierID:    verifier.ID,
		VerifierName:  verifier.Name,
		PublisherID:   publisher.ID,
		PublisherName: publisher.Name,
	}
	if err := c.demonRepo.Create(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("failed to insert demon: %w", err)
	}

	creators := make([]*primary.Player, 0, len(sub.Creators))
	for _, creatorName := range sub.Creators {
		creator, err := c.resolver.ResolveOrCreate(ctx, tx, creatorName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve creator: %w", err)
		}
		if err := c.creatorRepo.Add(ctx, tx, record.ID, creator.ID); err != nil {
			return nil, err
		}
		creators = append(creators, toPlayer(creator))
	}

	return &primary.FullDemon{
		Demon:    toDemon(record),
		Creators: creators,
		Records:  []*primary.Record{},
	}, nil
}

// validateParticipants rejects a blank publisher, verifier or creator name,
// reporting the field it came from.
func validateParticipants(sub primary.DemonSubmission) error {
	check := func(field, name string) error {
		if _, err := coreplayer.NormalizeName(name); err != nil {
			var validationErr *coredemon.ValidationError
			if errors.As(err, &validationErr) {
				validationErr.Field = field
			}
			return err
		}
		return nil
	}

	if err := check("publisher", sub.Publisher); err != nil {
		return err
	}
	if err := check("verifier", sub.Verifier); err != nil {
		return err
	}
	for _, name := range sub.Creators {
		if err := check("creators", name); err != nil {
			return err
		}
	}
	return nil
}
