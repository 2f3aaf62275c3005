/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/showcase/datastore"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/models"
	"github.com/suparena/showcase/storagemodels"
)

// PrizeAwardService manages prize awards given to projects.
type PrizeAwardService struct {
	store datastore.DataStore[models.PrizeAward]
	log   *zap.Logger
}

// NewPrizeAwardService creates a PrizeAwardService over the given store. A
// nil logger is replaced with a no-op one.
func NewPrizeAwardService(store datastore.DataStore[models.PrizeAward], log *zap.Logger) *PrizeAwardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PrizeAwardService{store: store, log: log.Named("prizeawards")}
}

// CreatePrizeAwardInput carries the caller-settable fields of a new award.
type CreatePrizeAwardInput struct {
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rank        int    `json:"rank,omitempty"`
}

// UpdatePrizeAwardInput is a patch: nil fields are left unchanged. The
// awarded project is immutable.
type UpdatePrizeAwardInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Rank        *int    `json:"rank,omitempty"`
}

// GetAll returns every visible award across all projects.
func (s *PrizeAwardService) GetAll(ctx context.Context) Result[[]models.PrizeAward] {
	awards, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  keys.AllAwardsPK,
		SortKeyPrefix: keys.AwardPrefix,
		Index:         storagemodels.IndexGSI1,
	})
	if err != nil {
		s.log.Error("list awards failed", zap.Error(err))
		return Fail[[]models.PrizeAward](normalize("list awards", err))
	}
	return Ok(visible(awards, func(a models.PrizeAward) bool { return a.IsHidden }))
}

// GetByID returns the award with the given id, hidden or not, resolved via
// the GSI1 type partition.
func (s *PrizeAwardService) GetByID(ctx context.Context, id string) Result[*models.PrizeAward] {
	if err := requireID("id", id); err != nil {
		return Fail[*models.PrizeAward](err)
	}

	award, err := s.getByID(ctx, id)
	if err != nil {
		return Fail[*models.PrizeAward](err)
	}
	return Ok(award)
}

// getByID resolves an award through the GSI1 type partition; like the
// project lookup, the index read is eventually consistent on the networked
// backend.
func (s *PrizeAwardService) getByID(ctx context.Context, id string) (*models.PrizeAward, error) {
	matches, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey: keys.AllAwardsPK,
		SortKey:      keys.AwardPrefix + id,
		Index:        storagemodels.IndexGSI1,
		Limit:        1,
	})
	if err != nil {
		return nil, normalize("get award", err)
	}
	if len(matches) == 0 {
		return nil, notFound(models.TypePrizeAward, id)
	}
	return &matches[0], nil
}

// GetByProject returns the visible awards given to a project.
func (s *PrizeAwardService) GetByProject(ctx context.Context, projectID string) Result[[]models.PrizeAward] {
	if err := requireID("projectId", projectID); err != nil {
		return Fail[[]models.PrizeAward](err)
	}

	awards, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  keys.ProjectPrefix + projectID,
		SortKeyPrefix: keys.AwardPrefix,
	})
	if err != nil {
		s.log.Error("list awards by project failed", zap.String("projectId", projectID), zap.Error(err))
		return Fail[[]models.PrizeAward](normalize("list awards by project", err))
	}
	return Ok(visible(awards, func(a models.PrizeAward) bool { return a.IsHidden }))
}

// Create validates the input and stores a new award. Validation failures
// never reach storage.
func (s *PrizeAwardService) Create(ctx context.Context, input CreatePrizeAwardInput) Result[*models.PrizeAward] {
	now := nowDateTime()
	award := &models.PrizeAward{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Name:        input.Name,
		Description: input.Description,
		Rank:        input.Rank,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validatePrizeAward(award); err != nil {
		return Fail[*models.PrizeAward](err)
	}

	if err := s.store.Put(ctx, *award); err != nil {
		s.log.Error("create award failed", zap.String("id", award.ID), zap.Error(err))
		return Fail[*models.PrizeAward](normalize("create award", err))
	}
	s.log.Info("award created",
		zap.String("id", award.ID),
		zap.String("projectId", award.ProjectID),
		zap.String("name", award.Name))
	return Ok(award)
}

// Update fetches the award, merges the patch, revalidates and writes it back.
// Last writer wins.
func (s *PrizeAwardService) Update(ctx context.Context, id string, patch UpdatePrizeAwardInput) Result[*models.PrizeAward] {
	if err := requireID("id", id); err != nil {
		return Fail[*models.PrizeAward](err)
	}

	award, err := s.getByID(ctx, id)
	if err != nil {
		return Fail[*models.PrizeAward](err)
	}

	if patch.Name != nil {
		award.Name = *patch.Name
	}
	if patch.Description != nil {
		award.Description = *patch.Description
	}
	if patch.Rank != nil {
		award.Rank = *patch.Rank
	}
	if err := validatePrizeAward(award); err != nil {
		return Fail[*models.PrizeAward](err)
	}

	award.UpdatedAt = nowDateTime()
	if err := s.store.Put(ctx, *award); err != nil {
		s.log.Error("update award failed", zap.String("id", id), zap.Error(err))
		return Fail[*models.PrizeAward](normalize("update award", err))
	}
	return Ok(award)
}

// Hide soft-deletes the award. A project whose only award is hidden stops
// classifying as a winner.
func (s *PrizeAwardService) Hide(ctx context.Context, id string) Result[struct{}] {
	if err := requireID("id", id); err != nil {
		return Fail[struct{}](err)
	}

	award, err := s.getByID(ctx, id)
	if err != nil {
		return Fail[struct{}](err)
	}

	if err := s.store.Hide(ctx, keys.PrizeAwardKey(award.ProjectID, award.ID)); err != nil {
		return Fail[struct{}](normalize("hide award", err))
	}
	s.log.Info("award hidden", zap.String("id", id))
	return Ok(struct{}{})
}
