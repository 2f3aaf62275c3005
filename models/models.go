/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package models defines the showcase catalog entities. The json and
// dynamodbav tags are kept identical so the local and DynamoDB backends
// serialize every field under the same attribute name, which the index-map
// macros rely on.
package models

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/showcase/keys"
)

// Entity type names used as the entityType discriminator on stored records.
const (
	TypeEvent      = "Event"
	TypeProject    = "Project"
	TypePrizeAward = "PrizeAward"
	TypeUser       = "User"
)

// Event is a catalog event (a hackathon, demo day or similar) that projects
// are submitted to.
type Event struct {

	// Unique identifier, assigned by the event service.
	ID string `json:"id" dynamodbav:"id"`

	// Display name of the event.
	// Required: true
	Name string `json:"name" dynamodbav:"name"`

	// A description of the event.
	Description string `json:"description,omitempty" dynamodbav:"description,omitempty"`

	// Venue or "online".
	Location string `json:"location,omitempty" dynamodbav:"location,omitempty"`

	// Event start, inclusive.
	// Format: date-time
	StartDate strfmt.DateTime `json:"startDate,omitempty" dynamodbav:"startDate,omitempty"`

	// Event end, inclusive.
	// Format: date-time
	EndDate strfmt.DateTime `json:"endDate,omitempty" dynamodbav:"endDate,omitempty"`

	// Soft-delete flag; hidden events stay retrievable by id but are
	// excluded from listings.
	IsHidden bool `json:"isHidden" dynamodbav:"isHidden"`

	// Timestamp when the event was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`

	// Timestamp when the event was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// Keys returns the event's full denormalized key tuple.
func (e Event) Keys() keys.IndexKeys { return keys.ForEvent(e.ID) }

// TeamMember is one member of a project team.
type TeamMember struct {

	// Display name of the member.
	// Required: true
	Name string `json:"name" dynamodbav:"name"`

	// Contact email.
	Email string `json:"email,omitempty" dynamodbav:"email,omitempty"`

	// Role on the team (e.g. "developer", "designer").
	Role string `json:"role,omitempty" dynamodbav:"role,omitempty"`
}

// Project is a submission to an event.
type Project struct {

	// Unique identifier, assigned by the project service.
	ID string `json:"id" dynamodbav:"id"`

	// Identifier of the parent event.
	// Required: true
	EventID string `json:"eventId" dynamodbav:"eventId"`

	// Display name of the project.
	// Required: true
	Name string `json:"name" dynamodbav:"name"`

	// A description of the project.
	Description string `json:"description,omitempty" dynamodbav:"description,omitempty"`

	// Technologies used, free-form tags.
	Technologies []string `json:"technologies,omitempty" dynamodbav:"technologies,omitempty"`

	// The team behind the submission.
	// Required: true
	TeamMembers []TeamMember `json:"teamMembers" dynamodbav:"teamMembers"`

	// Identifier of the submitting user.
	SubmittedBy string `json:"submittedBy,omitempty" dynamodbav:"submittedBy,omitempty"`

	// Source repository URL.
	RepoURL string `json:"repoUrl,omitempty" dynamodbav:"repoUrl,omitempty"`

	// Soft-delete flag.
	IsHidden bool `json:"isHidden" dynamodbav:"isHidden"`

	// Timestamp when the project was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`

	// Timestamp when the project was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// Keys returns the project's full denormalized key tuple.
func (p Project) Keys() keys.IndexKeys {
	return keys.ForProject(p.EventID, p.SubmittedBy, p.ID)
}

// PrizeAward records a prize given to a project. A project with at least one
// prize award classifies as a winner.
type PrizeAward struct {

	// Unique identifier, assigned by the prize-award service.
	ID string `json:"id" dynamodbav:"id"`

	// Identifier of the awarded project.
	// Required: true
	ProjectID string `json:"projectId" dynamodbav:"projectId"`

	// Prize name (e.g. "Best Use of Go").
	// Required: true
	Name string `json:"name" dynamodbav:"name"`

	// A description of the prize.
	Description string `json:"description,omitempty" dynamodbav:"description,omitempty"`

	// Placement within the prize, 1 = first.
	Rank int `json:"rank,omitempty" dynamodbav:"rank,omitempty"`

	// Soft-delete flag.
	IsHidden bool `json:"isHidden" dynamodbav:"isHidden"`

	// Timestamp when the award was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`

	// Timestamp when the award was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// Keys returns the award's full denormalized key tuple.
func (a PrizeAward) Keys() keys.IndexKeys {
	return keys.ForPrizeAward(a.ProjectID, a.ID)
}

// User is a catalog account. The email lookup index matches the stored
// email verbatim; writers wanting case-insensitive lookup must lowercase
// the address before storing it.
type User struct {

	// Unique identifier.
	ID string `json:"id" dynamodbav:"id"`

	// Contact email.
	// Required: true
	Email string `json:"email" dynamodbav:"email"`

	// Display name.
	Name string `json:"name,omitempty" dynamodbav:"name,omitempty"`

	// Coarse role (e.g. "participant", "judge", "organizer").
	Role string `json:"role,omitempty" dynamodbav:"role,omitempty"`

	// Soft-delete flag.
	IsHidden bool `json:"isHidden" dynamodbav:"isHidden"`

	// Timestamp when the user was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`

	// Timestamp when the user was last updated.
	// Format: date-time
	UpdatedAt strfmt.DateTime `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// Keys returns the user's full denormalized key tuple.
func (u User) Keys() keys.IndexKeys { return keys.ForUser(u.ID, u.Email) }
