package dataset

import (
	"context"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
)

// Postgres is a Store backed by a pgx pool. Queries acquire and release
// their connection per call via the pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres { return &Postgres{pool: pool} }

func (s *Postgres) Run(ctx context.Context, p Pipeline) ([]Row, error) {
	if err := p.validate(); err != nil {
		return nil, qerr.InvalidPipeline("pipeline rejected", err)
	}
	sqlText, args, err := buildSQL(p)
	if err != nil {
		return nil, qerr.InvalidPipeline("pipeline compilation failed", err)
	}
	for i, a := range args {
		args[i] = flattenArg(a)
	}

	rows, err := s.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, qerr.DataUnavailable("query execution failed", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var out []Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, qerr.DataUnavailable("row decode failed", err)
		}
		r := make(Row, len(vals))
		for i, v := range vals {
			r[names[i]] = normalizeValue(v)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, qerr.DataUnavailable("row iteration failed", err)
	}
	return out, nil
}

func (s *Postgres) Relations(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, qerr.DataUnavailable("listing relations failed", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, qerr.DataUnavailable("relation decode failed", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, qerr.DataUnavailable("relation iteration failed", err)
	}
	return names, nil
}

func (s *Postgres) Close() { s.pool.Close() }

// flattenArg converts OpIn value sets into typed slices pgx can encode as
// array parameters.
func flattenArg(a any) any {
	set, ok := a.([]Value)
	if !ok {
		return a
	}
	if len(set) == 0 {
		return []string{}
	}
	switch set[0].(type) {
	case string:
		out := make([]string, len(set))
		for i, v := range set {
			out[i], _ = v.(string)
		}
		return out
	case int64:
		out := make([]int64, len(set))
		for i, v := range set {
			out[i], _ = v.(int64)
		}
		return out
	case float64:
		out := make([]float64, len(set))
		for i, v := range set {
			out[i], _ = v.(float64)
		}
		return out
	}
	return set
}

// normalizeValue maps scanned pgx values onto the port's value set:
// string, int64, float64, time.Time, or nil.
func normalizeValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return nil
	case string, int64, float64, time.Time:
		return x
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case float32:
		return float64(x)
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return math.NaN()
		}
		return f.Float64
	case pgtype.Text:
		if !x.Valid {
			return nil
		}
		return x.String
	case pgtype.Date:
		if !x.Valid {
			return nil
		}
		return x.Time
	case []byte:
		return string(x)
	default:
		return x
	}
}
