package kpi

import "errors"

var (
	// ErrColumnNotFound means none of a logical column's known name variants
	// exist in a fetched table. Non-fatal: the affected metric degrades to
	// "unavailable" for that table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrAliasNotFound means an alias has no registered spreadsheet source.
	// This is a configuration error, never silently substituted.
	ErrAliasNotFound = errors.New("alias not found")

	// ErrUnknownLocation means a (location, dataset) pair is not routed.
	ErrUnknownLocation = errors.New("unknown location or dataset")
)
