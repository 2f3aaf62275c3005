/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"sort"
	"strings"
	"time"

	"github.com/suparena/showcase/models"
)

// SortField selects the ordering applied after filtering.
type SortField string

const (
	SortByDate       SortField = "date"
	SortByTitle      SortField = "title"
	SortByPopularity SortField = "popularity"
)

// SearchParams describes one pass through the search pipeline. Facets combine
// conjunctively; values within a facet combine disjunctively. An empty facet
// places no restriction.
type SearchParams struct {

	// Free-text query, matched case-insensitively as a substring of the
	// project name, description or any technology tag.
	Text string

	// Technology tags; a project matches if it carries any of them.
	Technologies []string

	// Parent event ids; a project matches if it belongs to any of them.
	EventIDs []string

	// Prize-status facet. Zero value behaves like FilterAll.
	PrizeStatus PrizeFilter

	// Ordering. Zero value leaves the incoming order untouched.
	SortBy SortField

	// Descending applies to date and title sorts. Popularity always sorts
	// descending.
	Descending bool

	// Popularity scores a project for SortByPopularity. The metric is the
	// caller's business (view counts, votes); nil scores everything zero.
	Popularity func(models.Project) float64
}

// Search runs text match, facet filters and sort over the given projects,
// returning a new slice. All sorts are stable.
func Search(projects []models.Project, awardsByProject map[string][]models.PrizeAward, params SearchParams) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if !matchesText(p, params.Text) {
			continue
		}
		if !matchesAny(params.Technologies, p.Technologies) {
			continue
		}
		if len(params.EventIDs) > 0 && !containsFold(params.EventIDs, p.EventID) {
			continue
		}
		out = append(out, p)
	}

	out = FilterByPrizeStatus(out, awardsByProject, params.PrizeStatus)
	sortProjects(out, params)
	return out
}

// matchesText reports whether the project matches the free-text query in any
// searched field. An empty query matches everything.
func matchesText(p models.Project, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)

	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Technologies {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// matchesAny reports whether any wanted tag appears among the project's tags.
// An empty facet matches everything.
func matchesAny(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if containsFold(have, w) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(h, needle) {
			return true
		}
	}
	return false
}

func sortProjects(projects []models.Project, params SearchParams) {
	switch params.SortBy {
	case SortByDate:
		sort.SliceStable(projects, func(i, j int) bool {
			ti, tj := time.Time(projects[i].CreatedAt), time.Time(projects[j].CreatedAt)
			if params.Descending {
				return tj.Before(ti)
			}
			return ti.Before(tj)
		})
	case SortByTitle:
		sort.SliceStable(projects, func(i, j int) bool {
			a, b := strings.ToLower(projects[i].Name), strings.ToLower(projects[j].Name)
			if params.Descending {
				return a > b
			}
			return a < b
		})
	case SortByPopularity:
		score := params.Popularity
		if score == nil {
			score = func(models.Project) float64 { return 0 }
		}
		sort.SliceStable(projects, func(i, j int) bool {
			return score(projects[i]) > score(projects[j])
		})
	}
}
