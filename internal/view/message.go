package view

import (
	"fmt"
	"strings"
)

// NoResultsMessage builds the empty-state text for a view, naming the active
// filters. noun is plural, e.g. "restaurants".
func NoResultsMessage(noun string, state FilterState) string {
	if noun == "" {
		noun = "results"
	}
	subject := noun
	if state.TopRated {
		subject = "top rated " + noun
	}

	var clauses []string
	if strings.TrimSpace(state.Search) != "" {
		clauses = append(clauses, "matching your search")
	}
	if state.Category != "" {
		clauses = append(clauses, fmt.Sprintf("in %q", state.Category))
	}
	if state.Bracket != nil {
		clauses = append(clauses, "priced "+state.Bracket.Label())
	}

	if len(clauses) == 0 {
		return fmt.Sprintf("No %s available.", subject)
	}
	return fmt.Sprintf("No %s found %s.", subject, strings.Join(clauses, " "))
}
