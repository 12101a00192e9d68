package kpi

import (
	"fmt"

	"github.com/samber/lo"
)

// ResolveColumn maps a logical metric name to the first of its known raw-name
// variants present in a table's column set. Variants are ordered current
// schema first, legacy last, so drifted sheets keep resolving.
//
// A failed resolution wraps ErrColumnNotFound; callers treat it as "this
// metric is unavailable for this table" and degrade, never raise.
func ResolveColumn(tableColumns map[string]bool, logicalName string, variants []string) (string, error) {
	if match, ok := lo.Find(variants, func(v string) bool { return tableColumns[v] }); ok {
		return match, nil
	}
	return "", fmt.Errorf("%w: %s (tried %d variants)", ErrColumnNotFound, logicalName, len(variants))
}
