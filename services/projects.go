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

// ProjectService manages project submissions.
type ProjectService struct {
	store datastore.DataStore[models.Project]
	log   *zap.Logger
}

// NewProjectService creates a ProjectService over the given store. A nil
// logger is replaced with a no-op one.
func NewProjectService(store datastore.DataStore[models.Project], log *zap.Logger) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectService{store: store, log: log.Named("projects")}
}

// CreateProjectInput carries the caller-settable fields of a new project.
type CreateProjectInput struct {
	EventID      string              `json:"eventId"`
	Name         string              `json:"name"`
	Description  string              `json:"description,omitempty"`
	Technologies []string            `json:"technologies,omitempty"`
	TeamMembers  []models.TeamMember `json:"teamMembers"`
	SubmittedBy  string              `json:"submittedBy,omitempty"`
	RepoURL      string              `json:"repoUrl,omitempty"`
}

// UpdateProjectInput is a patch: nil fields are left unchanged. The parent
// event is immutable; moving a project between events is not supported.
type UpdateProjectInput struct {
	Name         *string              `json:"name,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Technologies *[]string            `json:"technologies,omitempty"`
	TeamMembers  *[]models.TeamMember `json:"teamMembers,omitempty"`
	RepoURL      *string              `json:"repoUrl,omitempty"`
}

// GetAll returns every visible project across all events.
func (s *ProjectService) GetAll(ctx context.Context) Result[[]models.Project] {
	projects, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  keys.AllProjectsPK,
		SortKeyPrefix: keys.ProjectPrefix,
		Index:         storagemodels.IndexGSI1,
	})
	if err != nil {
		s.log.Error("list projects failed", zap.Error(err))
		return Fail[[]models.Project](normalize("list projects", err))
	}
	return Ok(visible(projects, func(p models.Project) bool { return p.IsHidden }))
}

// GetByID returns the project with the given id, hidden or not. The primary
// key needs the parent event id, so the lookup goes through the GSI1 type
// partition instead.
func (s *ProjectService) GetByID(ctx context.Context, id string) Result[*models.Project] {
	if err := requireID("id", id); err != nil {
		return Fail[*models.Project](err)
	}

	project, err := s.getByID(ctx, id)
	if err != nil {
		return Fail[*models.Project](err)
	}
	return Ok(project)
}

// getByID resolves a project through the GSI1 type partition. GSI reads are
// eventually consistent on the networked backend, so a lookup immediately
// after create may briefly miss; callers treating not-found as fatal right
// after a write should retry at their layer.
func (s *ProjectService) getByID(ctx context.Context, id string) (*models.Project, error) {
	matches, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey: keys.AllProjectsPK,
		SortKey:      keys.ProjectPrefix + id,
		Index:        storagemodels.IndexGSI1,
		Limit:        1,
	})
	if err != nil {
		return nil, normalize("get project", err)
	}
	if len(matches) == 0 {
		return nil, notFound(models.TypeProject, id)
	}
	return &matches[0], nil
}

// GetByEvent returns the visible projects submitted to an event, in storage
// order.
func (s *ProjectService) GetByEvent(ctx context.Context, eventID string) Result[[]models.Project] {
	if err := requireID("eventId", eventID); err != nil {
		return Fail[[]models.Project](err)
	}

	projects, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  keys.EventPrefix + eventID,
		SortKeyPrefix: keys.ProjectPrefix,
	})
	if err != nil {
		s.log.Error("list projects by event failed", zap.String("eventId", eventID), zap.Error(err))
		return Fail[[]models.Project](normalize("list projects by event", err))
	}
	return Ok(visible(projects, func(p models.Project) bool { return p.IsHidden }))
}

// GetBySubmitter returns the visible projects a user has submitted, served by
// the submitter index.
func (s *ProjectService) GetBySubmitter(ctx context.Context, userID string) Result[[]models.Project] {
	if err := requireID("userId", userID); err != nil {
		return Fail[[]models.Project](err)
	}

	projects, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  keys.UserPrefix + userID,
		SortKeyPrefix: keys.ProjectPrefix,
		Index:         storagemodels.IndexGSI2,
	})
	if err != nil {
		s.log.Error("list projects by submitter failed", zap.String("userId", userID), zap.Error(err))
		return Fail[[]models.Project](normalize("list projects by submitter", err))
	}
	return Ok(visible(projects, func(p models.Project) bool { return p.IsHidden }))
}

// Create validates the input and stores a new project. Validation failures
// never reach storage.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) Result[*models.Project] {
	now := nowDateTime()
	project := &models.Project{
		ID:           uuid.NewString(),
		EventID:      input.EventID,
		Name:         input.Name,
		Description:  input.Description,
		Technologies: input.Technologies,
		TeamMembers:  input.TeamMembers,
		SubmittedBy:  input.SubmittedBy,
		RepoURL:      input.RepoURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateProject(project); err != nil {
		return Fail[*models.Project](err)
	}

	if err := s.store.Put(ctx, *project); err != nil {
		s.log.Error("create project failed", zap.String("id", project.ID), zap.Error(err))
		return Fail[*models.Project](normalize("create project", err))
	}
	s.log.Info("project created",
		zap.String("id", project.ID),
		zap.String("eventId", project.EventID),
		zap.String("name", project.Name))
	return Ok(project)
}

// Update fetches the project, merges the patch, revalidates and writes it
// back. Last writer wins.
func (s *ProjectService) Update(ctx context.Context, id string, patch UpdateProjectInput) Result[*models.Project] {
	if err := requireID("id", id); err != nil {
		return Fail[*models.Project](err)
	}

	project, err := s.getByID(ctx, id)
	if err != nil {
		return Fail[*models.Project](err)
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Technologies != nil {
		project.Technologies = *patch.Technologies
	}
	if patch.TeamMembers != nil {
		project.TeamMembers = *patch.TeamMembers
	}
	if patch.RepoURL != nil {
		project.RepoURL = *patch.RepoURL
	}
	if err := validateProject(project); err != nil {
		return Fail[*models.Project](err)
	}

	project.UpdatedAt = nowDateTime()
	if err := s.store.Put(ctx, *project); err != nil {
		s.log.Error("update project failed", zap.String("id", id), zap.Error(err))
		return Fail[*models.Project](normalize("update project", err))
	}
	return Ok(project)
}

// Hide soft-deletes the project. Its awards stay in place; listings simply
// stop returning the project.
func (s *ProjectService) Hide(ctx context.Context, id string) Result[struct{}] {
	if err := requireID("id", id); err != nil {
		return Fail[struct{}](err)
	}

	// The primary key embeds the parent event id, so resolve the record
	// first.
	project, err := s.getByID(ctx, id)
	if err != nil {
		return Fail[struct{}](err)
	}

	if err := s.store.Hide(ctx, keys.ProjectKey(project.EventID, project.ID)); err != nil {
		return Fail[struct{}](normalize("hide project", err))
	}
	s.log.Info("project hidden", zap.String("id", id))
	return Ok(struct{}{})
}
