package kpi

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"practice-kpi/internal/sheets"
)

// SourceRef is the sheet coordinates behind one alias.
type SourceRef struct {
	SpreadsheetID string `yaml:"spreadsheet_id" json:"spreadsheet_id"`
	Range         string `yaml:"range" json:"range"`
}

// Routes holds the two static mappings loaded once at process start:
// alias -> sheet coordinates, and location -> dataset kind -> alias.
type Routes struct {
	Sources   map[string]SourceRef         `yaml:"sources"`
	Locations map[string]map[string]string `yaml:"locations"`
}

// Router resolves (location, dataset) pairs to aliases and hands aliases to
// the injected fetch collaborator. It performs no retry and no silent
// substitution: unknown pairs are configuration errors, and a failed fetch
// passes through as nil.
type Router struct {
	routes Routes
}

// NewRouter creates a router over static route mappings.
func NewRouter(routes Routes) *Router {
	return &Router{routes: routes}
}

// Resolve looks up the alias for a (location, dataset kind) pair.
func (r *Router) Resolve(location, datasetKind string) (string, error) {
	datasets, ok := r.routes.Locations[location]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLocation, location)
	}
	alias, ok := datasets[datasetKind]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnknownLocation, location, datasetKind)
	}
	return alias, nil
}

// Source returns the sheet coordinates registered for an alias.
func (r *Router) Source(alias string) (SourceRef, error) {
	ref, ok := r.routes.Sources[alias]
	if !ok {
		return SourceRef{}, fmt.Errorf("%w: %s", ErrAliasNotFound, alias)
	}
	return ref, nil
}

// Fetch retrieves the raw table behind an alias via the injected fetcher.
// A fetch failure is logged and surfaces as nil; the caller degrades the
// affected KPI rather than aborting the run.
func (r *Router) Fetch(alias string, fetcher sheets.Fetcher) *sheets.Table {
	ref, err := r.Source(alias)
	if err != nil {
		log.Error().Err(err).Str("alias", alias).Msg("Alias has no registered source")
		return nil
	}

	table, err := fetcher.Fetch(ref.SpreadsheetID, ref.Range)
	if err != nil {
		log.Warn().Err(err).Str("alias", alias).Msg("Fetch failed; KPI will degrade to empty")
		return nil
	}
	return table
}

// LocationNames returns the routed locations in sorted order.
func (r *Router) LocationNames() []string {
	names := lo.Keys(r.routes.Locations)
	slices.Sort(names)
	return names
}
