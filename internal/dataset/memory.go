package dataset

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sherrenjie/YourOwnIMDb/internal/model"
	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
)

// Snapshot is a full in-memory table set built from domain entities.
type Snapshot struct {
	MotionPictures []model.MotionPicture
	Movies         []model.Movie
	Series         []model.Series
	People         []model.Person
	Roles          []model.Role
	Awards         []model.Award
	Locations      []model.Location
	Genres         []model.Genre
	Users          []model.User
	Likes          []model.Like
}

// Memory is a Store over an in-memory table set. Rows keep insertion order,
// which makes unordered pipelines deterministic in tests.
type Memory struct {
	tables map[string][]Row
}

func NewMemory(snap Snapshot) *Memory {
	t := make(map[string][]Row, len(schema))
	for _, mp := range snap.MotionPictures {
		t[RelMotionPicture] = append(t[RelMotionPicture], Row{
			"id": mp.ID, "name": mp.Name, "rating": mp.Rating,
			"production": mp.Production, "budget": mp.Budget,
		})
	}
	for _, m := range snap.Movies {
		t[RelMovie] = append(t[RelMovie], Row{"mpid": m.PictureID, "boxoffice_collection": m.BoxOffice})
	}
	for _, s := range snap.Series {
		t[RelSeries] = append(t[RelSeries], Row{"mpid": s.PictureID})
	}
	for _, p := range snap.People {
		var dob Value
		if p.DOB != nil {
			dob = *p.DOB
		}
		t[RelPeople] = append(t[RelPeople], Row{
			"id": p.ID, "name": p.Name, "dob": dob, "nationality": p.Nationality,
		})
	}
	for _, r := range snap.Roles {
		t[RelRole] = append(t[RelRole], Row{"pid": r.PersonID, "mpid": r.PictureID, "role_name": r.Name})
	}
	for _, a := range snap.Awards {
		var year Value
		if a.Year != nil {
			year = *a.Year
		}
		t[RelAward] = append(t[RelAward], Row{
			"pid": a.PersonID, "mpid": a.PictureID, "award_year": year, "award_name": a.Name,
		})
	}
	for _, l := range snap.Locations {
		t[RelLocation] = append(t[RelLocation], Row{
			"mpid": l.PictureID, "city": l.City, "country": l.Country, "zip": l.Zip,
		})
	}
	for _, g := range snap.Genres {
		t[RelGenre] = append(t[RelGenre], Row{"mpid": g.PictureID, "genre_name": g.Name})
	}
	for _, u := range snap.Users {
		t[RelUsers] = append(t[RelUsers], Row{"email": u.Email, "age": u.Age})
	}
	for _, l := range snap.Likes {
		t[RelLikes] = append(t[RelLikes], Row{"uemail": l.UserEmail, "mpid": l.PictureID})
	}
	return &Memory{tables: t}
}

func (m *Memory) Relations(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(schema))
	for rel := range schema {
		names = append(names, rel)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Close() {}

func (m *Memory) Run(_ context.Context, p Pipeline) ([]Row, error) {
	if err := p.validate(); err != nil {
		return nil, qerr.InvalidPipeline("pipeline rejected", err)
	}

	rows := m.scan(p.From, p.Alias)
	for _, j := range p.Joins {
		rows = joinRows(rows, m.scan(j.Relation, j.Alias), j.On)
	}

	filtered := rows[:0:0]
	for _, r := range rows {
		if matchesAll(r, p.Where) {
			filtered = append(filtered, r)
		}
	}

	var out []Row
	if p.grouped() {
		out = groupRows(filtered, p)
	} else {
		out = make([]Row, 0, len(filtered))
		for _, r := range filtered {
			out = append(out, project(r, p.Select))
		}
	}

	kept := out[:0:0]
	for _, r := range out {
		if matchesAll(r, p.Having) {
			kept = append(kept, r)
		}
	}
	out = kept

	if p.Distinct {
		seen := map[string]struct{}{}
		uniq := out[:0:0]
		for _, r := range out {
			k := rowKey(r, p.Select)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			uniq = append(uniq, r)
		}
		out = uniq
	}

	sortRows(out, p.OrderBy)
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

// scan returns the relation's rows with alias-qualified column keys.
func (m *Memory) scan(rel, alias string) []Row {
	if alias == "" {
		alias = rel
	}
	src := m.tables[rel]
	out := make([]Row, 0, len(src))
	for _, r := range src {
		q := make(Row, len(r))
		for c, v := range r {
			q[alias+"."+c] = v
		}
		out = append(out, q)
	}
	return out
}

func joinRows(left, right []Row, on []JoinOn) []Row {
	var out []Row
	for _, l := range left {
		for _, r := range right {
			ok := true
			for _, pair := range on {
				lv, lok := l[pair.Left]
				if !lok {
					lv = r[pair.Left]
				}
				rv, rok := r[pair.Right]
				if !rok {
					rv = l[pair.Right]
				}
				if lv == nil || rv == nil || !valueEq(lv, rv) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			merged := make(Row, len(l)+len(r))
			for k, v := range l {
				merged[k] = v
			}
			for k, v := range r {
				merged[k] = v
			}
			out = append(out, merged)
		}
	}
	return out
}

func matchesAll(r Row, conds []Cond) bool {
	for _, c := range conds {
		if !matches(r[c.Col], c) {
			return false
		}
	}
	return true
}

// matches evaluates one condition; NULL fails every comparison except the
// explicit NotNull check.
func matches(v Value, c Cond) bool {
	if c.Op == OpNotNull {
		return v != nil
	}
	if v == nil {
		return false
	}
	switch c.Op {
	case OpEq:
		return valueEq(v, c.Value)
	case OpNe:
		return !valueEq(v, c.Value)
	case OpContainsFold:
		needle, _ := c.Value.(string)
		hay, ok := v.(string)
		return ok && strings.Contains(strings.ToLower(hay), strings.ToLower(needle))
	case OpIn:
		set, _ := c.Value.([]Value)
		for _, want := range set {
			if valueEq(v, want) {
				return true
			}
		}
		return false
	case OpLt, OpLe, OpGt, OpGe:
		cmp, ok := compareValues(v, c.Value)
		if !ok {
			return false
		}
		switch c.Op {
		case OpLt:
			return cmp < 0
		case OpLe:
			return cmp <= 0
		case OpGt:
			return cmp > 0
		default:
			return cmp >= 0
		}
	}
	return false
}

type group struct {
	key  string
	rows []Row
}

func groupRows(rows []Row, p Pipeline) []Row {
	byKey := map[string]int{}
	var groups []group
	for _, r := range rows {
		var b strings.Builder
		for _, g := range p.GroupBy {
			b.WriteString(valueKey(r[g]))
			b.WriteByte('\x00')
		}
		k := b.String()
		i, ok := byKey[k]
		if !ok {
			i = len(groups)
			byKey[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].rows = append(groups[i].rows, r)
	}
	// an all-aggregate pipeline over zero rows still yields one output row,
	// like SQL aggregates without GROUP BY
	if len(groups) == 0 && len(p.GroupBy) == 0 {
		groups = append(groups, group{})
	}

	out := make([]Row, 0, len(groups))
	for _, g := range groups {
		row := make(Row, len(p.Select))
		for _, f := range p.Select {
			if f.Agg == "" {
				row[f.Name()] = g.rows[0][f.Col]
				continue
			}
			row[f.Name()] = aggregate(g.rows, f)
		}
		out = append(out, row)
	}
	return out
}

func aggregate(rows []Row, f Field) Value {
	switch f.Agg {
	case AggCount:
		return int64(len(rows))
	case AggCountCol:
		var n int64
		for _, r := range rows {
			if r[f.Col] != nil {
				n++
			}
		}
		return n
	case AggCountDistinct:
		seen := map[string]struct{}{}
		for _, r := range rows {
			if v := r[f.Col]; v != nil {
				seen[valueKey(v)] = struct{}{}
			}
		}
		return int64(len(seen))
	case AggAvg:
		var sum float64
		var n int64
		for _, r := range rows {
			if v := r[f.Col]; v != nil {
				if x, ok := toFloat(v); ok {
					sum += x
					n++
				}
			}
		}
		if n == 0 {
			return nil
		}
		return sum / float64(n)
	case AggMin, AggMax:
		var best Value
		for _, r := range rows {
			v := r[f.Col]
			if v == nil {
				continue
			}
			if best == nil {
				best = v
				continue
			}
			cmp, ok := compareValues(v, best)
			if !ok {
				continue
			}
			if (f.Agg == AggMin && cmp < 0) || (f.Agg == AggMax && cmp > 0) {
				best = v
			}
		}
		return best
	}
	return nil
}

func project(r Row, fields []Field) Row {
	out := make(Row, len(fields))
	for _, f := range fields {
		out[f.Name()] = r[f.Col]
	}
	return out
}

func rowKey(r Row, fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(valueKey(r[f.Name()]))
		b.WriteByte('\x00')
	}
	return b.String()
}

func sortRows(rows []Row, order []Order) {
	if len(order) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range order {
			a, b := rows[i][o.Key], rows[j][o.Key]
			if a == nil && b == nil {
				continue
			}
			// NULLs sort last regardless of direction
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			cmp, ok := compareValues(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// valueEq compares two non-nil values, equating int64 and float64.
func valueEq(a, b Value) bool {
	if cmp, ok := compareValues(a, b); ok {
		return cmp == 0
	}
	return a == b
}

func compareValues(a, b Value) (int, bool) {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case av.Before(bv):
			return -1, true
		case av.After(bv):
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// valueKey renders a value as a collision-safe map key.
func valueKey(v Value) string {
	switch x := v.(type) {
	case nil:
		return "~"
	case string:
		return "s:" + x
	case int64:
		return "i:" + strconv.FormatInt(x, 10)
	case float64:
		return "f:" + strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return "t:" + strconv.FormatInt(x.UnixNano(), 10)
	default:
		return fmt.Sprintf("x:%v", x)
	}
}
