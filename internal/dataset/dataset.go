// Package dataset is the data access port for the query catalog: a pipeline
// description (select, join, filter, group, aggregate, order, limit) and a
// Store that executes it against either Postgres or an in-memory table set.
package dataset

import "context"

// Value is a cell value: string, int64, float64, time.Time, or nil for NULL.
type Value = any

// Row is one result row keyed by output column name.
type Row map[string]Value

// Store executes pipelines against a backing table set. Implementations are
// read-only and safe for concurrent use.
type Store interface {
	// Run executes the pipeline and returns its rows. A pipeline referencing
	// an unknown relation or column fails with an invalid_pipeline error;
	// a store failure surfaces as data_unavailable.
	Run(ctx context.Context, p Pipeline) ([]Row, error)

	// Relations enumerates the relation names in the store.
	Relations(ctx context.Context) ([]string, error)

	Close()
}
