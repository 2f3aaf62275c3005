/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/suparena/showcase/datastore/local"
	"github.com/suparena/showcase/datastore/mock"
	"github.com/suparena/showcase/errors"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/models"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	store, err := local.New[models.Project](models.TypeProject, "")
	if err != nil {
		t.Fatalf("local store failed: %v", err)
	}
	return NewProjectService(store, nil)
}

func validProjectInput(eventID string) CreateProjectInput {
	return CreateProjectInput{
		EventID:     eventID,
		Name:        "Chess Clock",
		TeamMembers: []models.TeamMember{{Name: "Ada"}},
	}
}

func mustCreateProject(t *testing.T, svc *ProjectService, input CreateProjectInput) *models.Project {
	t.Helper()
	res := svc.Create(context.Background(), input)
	if !res.Success {
		t.Fatalf("Create failed: %s", res.Error)
	}
	return res.Data
}

func TestProjectCreateRequiresTeamMembers(t *testing.T) {
	store := mock.New[models.Project]().WithKeyFunc(func(p models.Project) keys.Key {
		return p.Keys().Primary()
	})
	svc := NewProjectService(store, nil)

	res := svc.Create(context.Background(), CreateProjectInput{EventID: "e1", Name: "Solo"})
	if res.Success {
		t.Fatal("expected validation failure")
	}

	var verrs errors.ValidationErrors
	if !stderrors.As(res.Err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", res.Err)
	}
	found := false
	for _, f := range verrs.Fields() {
		if f == "teamMembers" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected teamMembers flagged, got %v", verrs.Fields())
	}
	if store.PutCalls != 0 {
		t.Errorf("validation failure must not reach storage, saw %d puts", store.PutCalls)
	}
}

func TestProjectCreateRejectsBadRepoURL(t *testing.T) {
	svc := newProjectService(t)

	input := validProjectInput("e1")
	input.RepoURL = "not a url"
	res := svc.Create(context.Background(), input)
	if res.Success {
		t.Fatal("expected validation failure for repoUrl")
	}
	if !errors.IsValidationError(res.Err) {
		t.Errorf("expected validation error, got %v", res.Err)
	}
}

func TestProjectGetByID(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(t)

	created := mustCreateProject(t, svc, validProjectInput("e1"))

	// The lookup must work without the parent event id.
	res := svc.GetByID(ctx, created.ID)
	if !res.Success {
		t.Fatalf("GetByID failed: %s", res.Error)
	}
	if res.Data.EventID != "e1" {
		t.Errorf("expected parent e1, got %q", res.Data.EventID)
	}

	missing := svc.GetByID(ctx, "no-such-id")
	if missing.Success || !errors.IsNotFound(missing.Err) {
		t.Errorf("expected not-found for unknown id, got %+v", missing)
	}
}

func TestProjectGetByEvent(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(t)

	a := mustCreateProject(t, svc, validProjectInput("e1"))
	b := mustCreateProject(t, svc, validProjectInput("e1"))
	mustCreateProject(t, svc, validProjectInput("e2"))

	res := svc.GetByEvent(ctx, "e1")
	if !res.Success {
		t.Fatalf("GetByEvent failed: %s", res.Error)
	}
	if len(res.Data) != 2 {
		t.Fatalf("expected 2 projects for e1, got %d", len(res.Data))
	}
	if res.Data[0].ID != a.ID || res.Data[1].ID != b.ID {
		t.Errorf("expected insertion order [%s %s], got %+v", a.ID, b.ID, res.Data)
	}
}

func TestProjectGetBySubmitter(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(t)

	mine := validProjectInput("e1")
	mine.SubmittedBy = "u1"
	created := mustCreateProject(t, svc, mine)

	theirs := validProjectInput("e1")
	theirs.SubmittedBy = "u2"
	mustCreateProject(t, svc, theirs)

	anonymous := validProjectInput("e1")
	mustCreateProject(t, svc, anonymous)

	res := svc.GetBySubmitter(ctx, "u1")
	if !res.Success {
		t.Fatalf("GetBySubmitter failed: %s", res.Error)
	}
	if len(res.Data) != 1 || res.Data[0].ID != created.ID {
		t.Fatalf("expected only u1's project, got %+v", res.Data)
	}
}

func TestProjectHideExcludesFromListings(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(t)

	kept := mustCreateProject(t, svc, validProjectInput("e1"))
	gone := mustCreateProject(t, svc, validProjectInput("e1"))

	if res := svc.Hide(ctx, gone.ID); !res.Success {
		t.Fatalf("Hide failed: %s", res.Error)
	}

	byEvent := svc.GetByEvent(ctx, "e1")
	if !byEvent.Success || len(byEvent.Data) != 1 || byEvent.Data[0].ID != kept.ID {
		t.Fatalf("expected only the visible project, got %+v", byEvent.Data)
	}

	all := svc.GetAll(ctx)
	if !all.Success || len(all.Data) != 1 {
		t.Fatalf("expected GetAll to exclude hidden, got %+v", all.Data)
	}

	byID := svc.GetByID(ctx, gone.ID)
	if !byID.Success || !byID.Data.IsHidden {
		t.Errorf("expected hidden project retrievable by id, got %+v", byID)
	}
}

func TestProjectUpdateReplacesSlices(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(t)

	input := validProjectInput("e1")
	input.Technologies = []string{"Go", "DynamoDB"}
	created := mustCreateProject(t, svc, input)

	tech := []string{"Rust"}
	res := svc.Update(ctx, created.ID, UpdateProjectInput{Technologies: &tech})
	if !res.Success {
		t.Fatalf("Update failed: %s", res.Error)
	}
	if len(res.Data.Technologies) != 1 || res.Data.Technologies[0] != "Rust" {
		t.Errorf("expected technologies replaced, got %v", res.Data.Technologies)
	}
	if res.Data.Name != input.Name {
		t.Errorf("untouched fields must survive, got name %q", res.Data.Name)
	}
}

func TestProjectUpdateRevalidates(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(t)

	created := mustCreateProject(t, svc, validProjectInput("e1"))

	empty := []models.TeamMember{}
	res := svc.Update(ctx, created.ID, UpdateProjectInput{TeamMembers: &empty})
	if res.Success {
		t.Fatal("expected failure when the patch empties teamMembers")
	}
	if !errors.IsValidationError(res.Err) {
		t.Errorf("expected validation error, got %v", res.Err)
	}

	// The stored record must be unchanged.
	after := svc.GetByID(ctx, created.ID)
	if !after.Success || len(after.Data.TeamMembers) != 1 {
		t.Errorf("rejected update must not modify storage, got %+v", after.Data)
	}
}
