package kpi

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"practice-kpi/internal/sheets"
)

// Orchestrator is the top-level entry point: it pulls raw tables through the
// router, drives column resolution, series building, and the daily/period
// calculators, and assembles the per-KPI result bundle for a location.
//
// Every orchestration call is stateless; failures are isolated per KPI so
// one bad source never blanks the whole response.
type Orchestrator struct {
	router  *Router
	fetcher sheets.Fetcher
	cal     OperationalCalendar
	defs    []Definition
}

// NewOrchestrator wires the router and fetch collaborator to the standard
// KPI catalogue.
func NewOrchestrator(router *Router, fetcher sheets.Fetcher) *Orchestrator {
	return &Orchestrator{
		router:  router,
		fetcher: fetcher,
		defs:    Definitions(),
	}
}

// Locations returns the locations the orchestrator can compute.
func (o *Orchestrator) Locations() []string {
	return o.router.LocationNames()
}

// Compute builds the full KPI bundle for one location. lookbackDays bounds
// how much daily history is retained before aggregation; points are dropped
// after fetch, relative to the series' own most recent date, so the latest
// value always reflects the true most-recent day. lookbackDays <= 0 keeps
// everything.
func (o *Orchestrator) Compute(location string, lookbackDays int) map[string]KPIResult {
	results := make(map[string]KPIResult, len(o.defs))

	// Each alias is fetched at most once per run, even when several KPIs
	// share a dataset. A failed fetch is memoized too, so one broken sheet
	// costs one attempt, not five.
	tables := make(map[string]*sheets.Table)
	tried := make(map[string]bool)
	fetchOnce := func(alias string) *sheets.Table {
		if tried[alias] {
			return tables[alias]
		}
		tried[alias] = true
		tables[alias] = o.router.Fetch(alias, o.fetcher)
		return tables[alias]
	}

	for _, def := range o.defs {
		results[def.Name] = o.computeOne(location, def, lookbackDays, fetchOnce)
	}

	return results
}

// ComputeAll computes bundles for several locations concurrently. Calls are
// independent: each reads only its own fetched tables and writes only its
// own slot in the result map.
func (o *Orchestrator) ComputeAll(ctx context.Context, locations []string, lookbackDays int) (map[string]map[string]KPIResult, error) {
	results := make(map[string]map[string]KPIResult, len(locations))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, location := range locations {
		location := location
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bundle := o.Compute(location, lookbackDays)
			mu.Lock()
			results[location] = bundle
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator) computeOne(location string, def Definition, lookbackDays int, fetchOnce func(string) *sheets.Table) KPIResult {
	alias, err := o.router.Resolve(location, def.Dataset)
	if err != nil {
		log.Error().Err(err).Str("kpi", def.Name).Msg("Routing failed; check alias configuration")
		return EmptyResult(def.Kind)
	}

	table := fetchOnce(alias)
	if table == nil {
		return EmptyResult(def.Kind)
	}

	columns := table.ColumnSet()
	dateColumn, err := ResolveColumn(columns, "date", def.DateVariants)
	if err != nil {
		log.Warn().Err(err).Str("kpi", def.Name).Str("alias", alias).Msg("No date column; KPI unavailable for this table")
		return EmptyResult(def.Kind)
	}

	var daily DailySeries
	components := map[string]DailySeries{}

	switch def.Kind {
	case RatioPair:
		numerator, numOK := o.buildSide(table, columns, dateColumn, def.Numerator, MergeSum, def.Name)
		denominator, denOK := o.buildSide(table, columns, dateColumn, def.Denominator, MergeSum, def.Name)
		if !numOK || !denOK {
			return EmptyResult(def.Kind)
		}
		components[ComponentNumerator] = numerator
		components[ComponentDenominator] = denominator
		daily = CalculateDaily(RatioPair, components)

	case CumulativeCount:
		raw, ok := o.buildSide(table, columns, dateColumn, def.Components, MergeLast, def.Name)
		if !ok {
			return EmptyResult(def.Kind)
		}
		components["raw"] = raw
		daily = CalculateDaily(CumulativeCount, components)

	default:
		combined, ok := o.buildSide(table, columns, dateColumn, def.Components, MergeSum, def.Name)
		if !ok {
			return EmptyResult(def.Kind)
		}
		components["combined"] = combined
		daily = combined
	}

	daily = trimLookback(daily, lookbackDays)
	if lookbackDays > 0 && len(daily) > 0 {
		// Components share daily's window. Trimming each relative to its
		// own max date would let a stale component side drag the buckets
		// outside the window daily covers.
		cutoff := daily[len(daily)-1].Date.AddDate(0, 0, -(lookbackDays - 1))
		for name, s := range components {
			components[name] = trimBefore(s, cutoff)
		}
	}

	result := KPIResult{
		Kind:    def.Kind,
		Daily:   daily,
		Weekly:  Aggregate(def.Kind, daily, components, o.cal.WeekBucket),
		Monthly: Aggregate(def.Kind, daily, components, o.cal.MonthBucket),
		Latest:  Latest(daily),
	}
	return result
}

// buildSide resolves and builds one side of a KPI (the component list of an
// additive/cumulative KPI, or one half of a ratio). Components whose column
// cannot be resolved are skipped; the side fails only when nothing resolves.
// Multi-component sides merge additively, honoring per-component negation.
func (o *Orchestrator) buildSide(table *sheets.Table, columns map[string]bool, dateColumn string, specs []ComponentSpec, merge MergeRule, kpiName string) (DailySeries, bool) {
	built := make(map[string]DailySeries, len(specs))
	for _, spec := range specs {
		column, err := ResolveColumn(columns, spec.Logical, spec.Variants)
		if err != nil {
			log.Debug().Str("kpi", kpiName).Str("component", spec.Logical).Msg("Component column missing; treating as absent")
			continue
		}
		series := BuildSeries(table, dateColumn, column, merge)
		if spec.Negate {
			series = ScaleSeries(series, -1)
		}
		built[spec.Logical] = series
	}

	if len(built) == 0 {
		log.Warn().Str("kpi", kpiName).Msg("No component columns resolved; KPI unavailable for this table")
		return nil, false
	}
	if len(built) == 1 {
		for _, s := range built {
			return s, true
		}
	}
	return CalculateDaily(AdditiveAmount, built), true
}

// trimLookback drops points older than the series' own most recent date
// minus the lookback window.
func trimLookback(s DailySeries, lookbackDays int) DailySeries {
	if lookbackDays <= 0 || len(s) == 0 {
		return s
	}
	return trimBefore(s, s[len(s)-1].Date.AddDate(0, 0, -(lookbackDays-1)))
}

func trimBefore(s DailySeries, cutoff time.Time) DailySeries {
	for i, p := range s {
		if !p.Date.Before(cutoff) {
			return s[i:]
		}
	}
	return DailySeries{}
}
