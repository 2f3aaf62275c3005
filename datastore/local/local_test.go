/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	eserrors "github.com/suparena/showcase/errors"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/models"
	"github.com/suparena/showcase/registry"
	"github.com/suparena/showcase/storagemodels"
)

type localTestProject struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	Name        string `json:"name"`
	SubmittedBy string `json:"submittedBy,omitempty"`
	IsHidden    bool   `json:"isHidden,omitempty"`
}

func init() {
	registry.RegisterIndexMap[localTestProject](map[string]string{
		storagemodels.AttrPK:     "EVENT#{eventId}",
		storagemodels.AttrSK:     "PROJECT#{id}",
		storagemodels.AttrGSI1PK: "PROJECT",
		storagemodels.AttrGSI1SK: "PROJECT#{id}",
		storagemodels.AttrGSI2PK: "USER#{submittedBy}",
		storagemodels.AttrGSI2SK: "PROJECT#{id}",
	})
}

func newTestStore(t *testing.T) *DataStore[localTestProject] {
	t.Helper()
	ds, err := New[localTestProject]("Project", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ds
}

func projectKey(eventID, id string) keys.Key {
	return keys.Key{PK: "EVENT#" + eventID, SK: "PROJECT#" + id}
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	p := localTestProject{ID: "p1", EventID: "e1", Name: "Chess Clock"}
	if err := ds.Put(ctx, p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := ds.Get(ctx, projectKey("e1", "p1"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Chess Clock" {
		t.Errorf("expected name %q, got %q", "Chess Clock", got.Name)
	}
}

func TestGetNotFound(t *testing.T) {
	ds := newTestStore(t)

	_, err := ds.Get(context.Background(), projectKey("e1", "missing"))
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	if !eserrors.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestPutMissingKeyFields(t *testing.T) {
	ds := newTestStore(t)

	err := ds.Put(context.Background(), localTestProject{ID: "p1", Name: "No Event"})
	if err == nil {
		t.Fatal("expected error for entity missing partition key fields")
	}
	if !eserrors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetAllInsertionOrder(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	names := []string{"First", "Second", "Third"}
	ids := []string{"p1", "p2", "p3"}
	for i := range ids {
		p := localTestProject{ID: ids[i], EventID: "e1", Name: names[i]}
		if err := ds.Put(ctx, p); err != nil {
			t.Fatalf("Put %s failed: %v", ids[i], err)
		}
	}
	// A sibling partition that must not appear.
	if err := ds.Put(ctx, localTestProject{ID: "px", EventID: "e2", Name: "Other"}); err != nil {
		t.Fatalf("Put px failed: %v", err)
	}

	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  "EVENT#e1",
		SortKeyPrefix: "PROJECT#",
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range names {
		if results[i].Name != want {
			t.Errorf("result %d: expected %q, got %q", i, want, results[i].Name)
		}
	}
}

func TestGetAllGSIPartition(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", SubmittedBy: "u1", Name: "Mine"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Put(ctx, localTestProject{ID: "p2", EventID: "e1", SubmittedBy: "u2", Name: "Theirs"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  "USER#u1",
		SortKeyPrefix: "PROJECT#",
		Index:         storagemodels.IndexGSI2,
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "p1" {
		t.Fatalf("expected only p1 via GSI2, got %+v", results)
	}
}

func TestGetAllOmittedGSIAttribute(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	// No submitter, so the GSI2 attributes are never written.
	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", Name: "Anonymous"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  "USER#",
		SortKeyPrefix: "PROJECT#",
		Index:         storagemodels.IndexGSI2,
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for a dangling GSI2 partition, got %d", len(results))
	}
}

func TestGetAllExactSortKey(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", Name: "One"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Put(ctx, localTestProject{ID: "p2", EventID: "e1", Name: "Two"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey: "PROJECT",
		SortKey:      "PROJECT#p2",
		Index:        storagemodels.IndexGSI1,
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "p2" {
		t.Fatalf("expected exactly p2, got %+v", results)
	}
}

func TestPutOverwriteKeepsSlot(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", Name: "Old"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Put(ctx, localTestProject{ID: "p2", EventID: "e1", Name: "Next"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", Name: "New"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  "EVENT#e1",
		SortKeyPrefix: "PROJECT#",
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "New" || results[1].Name != "Next" {
		t.Errorf("overwrite changed insertion order: %+v", results)
	}
}

func TestPutIdempotent(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	p := localTestProject{ID: "p1", EventID: "e1", Name: "Same"}
	if err := ds.Put(ctx, p); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Put(ctx, p); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  "EVENT#e1",
		SortKeyPrefix: "PROJECT#",
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Same" {
		t.Errorf("repeated put must leave one unchanged record, got %+v", results)
	}
}

func TestHide(t *testing.T) {
	ctx := context.Background()
	ds := newTestStore(t)

	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", Name: "Soon Gone"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Hide(ctx, projectKey("e1", "p1")); err != nil {
		t.Fatalf("Hide failed: %v", err)
	}

	got, err := ds.Get(ctx, projectKey("e1", "p1"))
	if err != nil {
		t.Fatalf("Get after Hide failed: %v", err)
	}
	if !got.IsHidden {
		t.Error("expected record to be hidden")
	}
	if got.Name != "Soon Gone" {
		t.Errorf("Hide must not alter other fields, got name %q", got.Name)
	}
}

func TestHideNotFound(t *testing.T) {
	ds := newTestStore(t)

	err := ds.Hide(context.Background(), projectKey("e1", "missing"))
	if !eserrors.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	ds, err := New[localTestProject]("Project", path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := ds.Put(ctx, localTestProject{ID: "p1", EventID: "e1", Name: "Persisted"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := ds.Put(ctx, localTestProject{ID: "p2", EventID: "e1", Name: "Also"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot file to exist: %v", err)
	}

	reloaded, err := New[localTestProject]("Project", path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	results, err := reloaded.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  "EVENT#e1",
		SortKeyPrefix: "PROJECT#",
	})
	if err != nil {
		t.Fatalf("GetAll after reload failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 records after reload, got %d", len(results))
	}
	if results[0].Name != "Persisted" || results[1].Name != "Also" {
		t.Errorf("reload lost insertion order: %+v", results)
	}
}

func TestUserReachableViaDerivedEmailKey(t *testing.T) {
	ctx := context.Background()
	ds, err := New[models.User](models.TypeUser, "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	u := models.User{ID: "U5", Email: "Dana@Example.com", Name: "Dana"}
	if err := ds.Put(ctx, u); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// The key tuple the model derives must address the stored record, for
	// any casing the email was written with.
	ik := u.Keys()
	results, err := ds.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey: ik.GSI1PK,
		SortKey:      ik.GSI1SK,
		Index:        storagemodels.IndexGSI1,
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != "U5" {
		t.Fatalf("expected the stored user via its derived email key %q, got %d results",
			ik.GSI1PK, len(results))
	}

	got, err := ds.Get(ctx, ik.Primary())
	if err != nil {
		t.Fatalf("Get by derived primary key failed: %v", err)
	}
	if got.Email != "Dana@Example.com" {
		t.Errorf("stored email must be preserved verbatim, got %q", got.Email)
	}
}

func TestUnregisteredTypeRejected(t *testing.T) {
	type unregistered struct{ ID string }
	if _, err := New[unregistered]("Nope", ""); err == nil {
		t.Fatal("expected error for type without an index map")
	}
}
