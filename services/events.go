/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package services

import (
	"context"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/showcase/datastore"
	"github.com/suparena/showcase/keys"
	"github.com/suparena/showcase/models"
	"github.com/suparena/showcase/storagemodels"
)

// EventService manages catalog events.
type EventService struct {
	store datastore.DataStore[models.Event]
	log   *zap.Logger
}

// NewEventService creates an EventService over the given store. A nil logger
// is replaced with a no-op one.
func NewEventService(store datastore.DataStore[models.Event], log *zap.Logger) *EventService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventService{store: store, log: log.Named("events")}
}

// CreateEventInput carries the caller-settable fields of a new event.
type CreateEventInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Location    string          `json:"location,omitempty"`
	StartDate   strfmt.DateTime `json:"startDate,omitempty"`
	EndDate     strfmt.DateTime `json:"endDate,omitempty"`
}

// UpdateEventInput is a patch: nil fields are left unchanged.
type UpdateEventInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *string          `json:"location,omitempty"`
	StartDate   *strfmt.DateTime `json:"startDate,omitempty"`
	EndDate     *strfmt.DateTime `json:"endDate,omitempty"`
}

// GetAll returns every visible event. Hidden events are excluded here, not in
// the adapter.
func (s *EventService) GetAll(ctx context.Context) Result[[]models.Event] {
	events, err := s.store.GetAll(ctx, &storagemodels.ListParams{
		PartitionKey:  keys.AllEventsPK,
		SortKeyPrefix: keys.EventPrefix,
		Index:         storagemodels.IndexGSI1,
	})
	if err != nil {
		s.log.Error("list events failed", zap.Error(err))
		return Fail[[]models.Event](normalize("list events", err))
	}
	return Ok(visible(events, func(e models.Event) bool { return e.IsHidden }))
}

// GetByID returns the event with the given id, hidden or not.
func (s *EventService) GetByID(ctx context.Context, id string) Result[*models.Event] {
	if err := requireID("id", id); err != nil {
		return Fail[*models.Event](err)
	}

	event, err := s.store.Get(ctx, keys.EventKey(id))
	if err != nil {
		return Fail[*models.Event](normalize("get event", err))
	}
	return Ok(event)
}

// Create validates the input and stores a new event. Validation failures
// never reach storage.
func (s *EventService) Create(ctx context.Context, input CreateEventInput) Result[*models.Event] {
	now := nowDateTime()
	event := &models.Event{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validateEvent(event); err != nil {
		return Fail[*models.Event](err)
	}

	if err := s.store.Put(ctx, *event); err != nil {
		s.log.Error("create event failed", zap.String("id", event.ID), zap.Error(err))
		return Fail[*models.Event](normalize("create event", err))
	}
	s.log.Info("event created", zap.String("id", event.ID), zap.String("name", event.Name))
	return Ok(event)
}

// Update fetches the event, merges the patch, revalidates and writes it back.
// Last writer wins.
func (s *EventService) Update(ctx context.Context, id string, patch UpdateEventInput) Result[*models.Event] {
	if err := requireID("id", id); err != nil {
		return Fail[*models.Event](err)
	}

	event, err := s.store.Get(ctx, keys.EventKey(id))
	if err != nil {
		return Fail[*models.Event](normalize("update event", err))
	}

	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.StartDate != nil {
		event.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		event.EndDate = *patch.EndDate
	}
	if err := validateEvent(event); err != nil {
		return Fail[*models.Event](err)
	}

	event.UpdatedAt = nowDateTime()
	if err := s.store.Put(ctx, *event); err != nil {
		s.log.Error("update event failed", zap.String("id", id), zap.Error(err))
		return Fail[*models.Event](normalize("update event", err))
	}
	return Ok(event)
}

// Hide soft-deletes the event. The record remains retrievable by id.
func (s *EventService) Hide(ctx context.Context, id string) Result[struct{}] {
	if err := requireID("id", id); err != nil {
		return Fail[struct{}](err)
	}

	if err := s.store.Hide(ctx, keys.EventKey(id)); err != nil {
		return Fail[struct{}](normalize("hide event", err))
	}
	s.log.Info("event hidden", zap.String("id", id))
	return Ok(struct{}{})
}

// visible filters out entities whose hidden predicate is true, preserving
// order.
func visible[T any](in []T, hidden func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, e := range in {
		if !hidden(e) {
			out = append(out, e)
		}
	}
	return out
}

// nowDateTime stamps at millisecond precision, the precision strfmt.DateTime
// serializes with, so a stored timestamp reads back equal to the one the
// create call returned.
func nowDateTime() strfmt.DateTime {
	return strfmt.DateTime(time.Now().UTC().Truncate(time.Millisecond))
}
