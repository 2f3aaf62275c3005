/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package query provides stateless, in-memory derivation helpers over catalog
// entities: prize-status classification and the search/filter/sort pipeline.
// Nothing here touches storage; callers fetch via the services and hand the
// slices in.
package query

import (
	"sort"

	"github.com/suparena/showcase/models"
)

// PrizeStatus classifies a project by whether it holds any prize award.
type PrizeStatus string

const (
	PrizeStatusWinner PrizeStatus = "winner"
	PrizeStatusNone   PrizeStatus = "none"
)

// PrizeFilter selects which prize-status classes a listing keeps.
type PrizeFilter string

const (
	FilterAll      PrizeFilter = "all"
	FilterWinners  PrizeFilter = "winners"
	FilterNoPrizes PrizeFilter = "no-prizes"
)

// ClassifyPrizeStatus returns winner iff the award slice is non-empty. The
// caller decides which awards count; hidden awards should already be filtered
// out by the service layer.
func ClassifyPrizeStatus(awards []models.PrizeAward) PrizeStatus {
	if len(awards) > 0 {
		return PrizeStatusWinner
	}
	return PrizeStatusNone
}

// SortByPrizeStatus partitions projects so winners come first. The partition
// is stable: within each class the incoming order is preserved. The input
// slice is not modified.
func SortByPrizeStatus(projects []models.Project, awardsByProject map[string][]models.PrizeAward) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		wi := ClassifyPrizeStatus(awardsByProject[out[i].ID]) == PrizeStatusWinner
		wj := ClassifyPrizeStatus(awardsByProject[out[j].ID]) == PrizeStatusWinner
		return wi && !wj
	})
	return out
}

// FilterByPrizeStatus keeps only the projects matching the filter. FilterAll
// (or an unrecognized value) passes everything through unchanged.
func FilterByPrizeStatus(projects []models.Project, awardsByProject map[string][]models.PrizeAward, filter PrizeFilter) []models.Project {
	if filter != FilterWinners && filter != FilterNoPrizes {
		return projects
	}

	want := PrizeStatusNone
	if filter == FilterWinners {
		want = PrizeStatusWinner
	}

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if ClassifyPrizeStatus(awardsByProject[p.ID]) == want {
			out = append(out, p)
		}
	}
	return out
}
