package media

import (
	"strings"

	"github.com/wdhive/photo-gallery/internal/domain/model"
)

// ClauseKind enumerates the predicate shapes the store knows how to run.
// Keeping them as tagged variants makes the related-media priority order
// explicit and testable instead of burying it in one dynamic query.
type ClauseKind int

const (
	ClauseTagsHasAll ClauseKind = iota
	ClauseTitleContains
	ClauseDescriptionContains
	ClauseTagsHasAny
	ClauseCategoryEquals
)

type Clause struct {
	Kind       ClauseKind
	Text       string
	Tags       []string
	CategoryID string
}

// SearchClausesOR builds the free-text filter: case-insensitive substring
// match on title and description plus tag membership, combined by the
// store with OR in a single query. Empty input means no text filter at
// all, never "match nothing".
func SearchClausesOR(search string) []Clause {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}

	return []Clause{
		{Kind: ClauseTitleContains, Text: search},
		{Kind: ClauseDescriptionContains, Text: search},
		{Kind: ClauseTagsHasAny, Tags: []string{search}},
	}
}

// relatedClauses builds the fallback sequence for related-media lookup,
// most specific first. Each clause runs as its own store query; clauses
// whose facet is empty are skipped.
func relatedClauses(ref model.Media) []Clause {
	clauses := make([]Clause, 0, 5)

	if len(ref.Tags) > 0 {
		clauses = append(clauses, Clause{Kind: ClauseTagsHasAll, Tags: ref.Tags})
	}
	if ref.Title != "" {
		clauses = append(clauses, Clause{Kind: ClauseTitleContains, Text: ref.Title})
	}
	if ref.Description != "" {
		clauses = append(clauses, Clause{Kind: ClauseDescriptionContains, Text: ref.Description})
	}
	if len(ref.Tags) > 0 {
		clauses = append(clauses, Clause{Kind: ClauseTagsHasAny, Tags: ref.Tags})
	}
	if ref.CategoryID != nil && *ref.CategoryID != "" {
		clauses = append(clauses, Clause{Kind: ClauseCategoryEquals, CategoryID: *ref.CategoryID})
	}

	return clauses
}
