/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package services

import (
	"net/url"
	"time"

	"github.com/suparena/showcase/errors"
	"github.com/suparena/showcase/models"
)

// validateEvent checks an event before it is written. Returns nil or a
// ValidationErrors aggregate with one entry per offending field.
func validateEvent(e *models.Event) error {
	var verrs errors.ValidationErrors

	if e.Name == "" {
		verrs = append(verrs, &errors.ValidationError{Field: "name", Message: "name is required"})
	}
	start, end := time.Time(e.StartDate), time.Time(e.EndDate)
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		verrs = append(verrs, &errors.ValidationError{Field: "endDate", Message: "endDate must not precede startDate"})
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// validateProject checks a project before it is written. A project must name
// its parent event and carry at least one team member.
func validateProject(p *models.Project) error {
	var verrs errors.ValidationErrors

	if p.EventID == "" {
		verrs = append(verrs, &errors.ValidationError{Field: "eventId", Message: "eventId is required"})
	}
	if p.Name == "" {
		verrs = append(verrs, &errors.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(p.TeamMembers) == 0 {
		verrs = append(verrs, &errors.ValidationError{Field: "teamMembers", Message: "at least one team member is required"})
	}
	for _, m := range p.TeamMembers {
		if m.Name == "" {
			verrs = append(verrs, &errors.ValidationError{Field: "teamMembers", Message: "every team member needs a name"})
			break
		}
	}
	if p.RepoURL != "" {
		if u, err := url.Parse(p.RepoURL); err != nil || u.Scheme == "" || u.Host == "" {
			verrs = append(verrs, &errors.ValidationError{Field: "repoUrl", Message: "repoUrl must be an absolute URL"})
		}
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// validatePrizeAward checks an award before it is written.
func validatePrizeAward(a *models.PrizeAward) error {
	var verrs errors.ValidationErrors

	if a.ProjectID == "" {
		verrs = append(verrs, &errors.ValidationError{Field: "projectId", Message: "projectId is required"})
	}
	if a.Name == "" {
		verrs = append(verrs, &errors.ValidationError{Field: "name", Message: "name is required"})
	}
	if a.Rank < 0 {
		verrs = append(verrs, &errors.ValidationError{Field: "rank", Message: "rank must not be negative"})
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}
