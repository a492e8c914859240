// Package catalog implements the fixed set of analytical operations over the
// film dataset. Every operation is a pure read: it validates its parameters,
// runs one or two pipelines through the injected store, post-processes rows
// (tie sets, pair dedup, set collection), and returns typed records.
package catalog

import (
	"context"
	"math"
	"time"

	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
)

// Catalog holds the injected data access port. The caller owns the store's
// lifecycle; the catalog keeps no other state, so one instance may serve
// concurrent calls.
type Catalog struct {
	store dataset.Store
}

func New(store dataset.Store) *Catalog {
	return &Catalog{store: store}
}

// ListTables enumerates the relation names in the backing store.
func (c *Catalog) ListTables(ctx context.Context) ([]string, error) {
	return c.store.Relations(ctx)
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return qerr.InvalidParameter(name+" must be a finite number", nil)
	}
	return nil
}

// Row value readers. The store adapters normalize values onto string,
// int64, float64, time.Time; these keep the mapping code terse.

func rowString(r dataset.Row, key string) string {
	s, _ := r[key].(string)
	return s
}

func rowInt(r dataset.Row, key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func rowFloat(r dataset.Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func rowTime(r dataset.Row, key string) time.Time {
	t, _ := r[key].(time.Time)
	return t
}
