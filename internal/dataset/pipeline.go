package dataset

import (
	"fmt"
	"strings"
)

// Relation and column names shared by both store adapters.
const (
	RelMotionPicture = "motion_picture"
	RelMovie         = "movie"
	RelSeries        = "series"
	RelPeople        = "people"
	RelRole          = "role"
	RelAward         = "award"
	RelLocation      = "location"
	RelGenre         = "genre"
	RelUsers         = "users"
	RelLikes         = "likes"
)

// schema lists the columns of every relation; Run validates pipelines
// against it so a typo fails fast as invalid_pipeline instead of producing
// wrong rows.
var schema = map[string][]string{
	RelMotionPicture: {"id", "name", "rating", "production", "budget"},
	RelMovie:         {"mpid", "boxoffice_collection"},
	RelSeries:        {"mpid"},
	RelPeople:        {"id", "name", "dob", "nationality"},
	RelRole:          {"pid", "mpid", "role_name"},
	RelAward:         {"pid", "mpid", "award_year", "award_name"},
	RelLocation:      {"mpid", "city", "country", "zip"},
	RelGenre:         {"mpid", "genre_name"},
	RelUsers:         {"email", "age"},
	RelLikes:         {"uemail", "mpid"},
}

// CompareOp is a filter comparison operator.
type CompareOp string

const (
	OpEq           CompareOp = "="
	OpNe           CompareOp = "<>"
	OpLt           CompareOp = "<"
	OpLe           CompareOp = "<="
	OpGt           CompareOp = ">"
	OpGe           CompareOp = ">="
	OpContainsFold CompareOp = "contains" // case-insensitive substring
	OpIn           CompareOp = "in"       // value is []Value
	OpNotNull      CompareOp = "notnull"
)

// Agg is an aggregate function over grouped rows.
type Agg string

const (
	AggCount         Agg = "count"          // COUNT(*): all rows in the group
	AggCountCol      Agg = "count_col"      // COUNT(col): non-NULL values
	AggCountDistinct Agg = "count_distinct" // COUNT(DISTINCT col)
	AggAvg           Agg = "avg"            // NULLs skipped; NULL when empty
	AggMin           Agg = "min"
	AggMax           Agg = "max"
)

// Field is one projected output: a plain column or an aggregate.
// Columns are alias-qualified, e.g. "mp.name".
type Field struct {
	Col string // empty for AggCount
	Agg Agg    // empty for a plain column
	As  string // output name; defaults to the bare column name
}

// Name returns the output column name of the field.
func (f Field) Name() string {
	if f.As != "" {
		return f.As
	}
	if i := strings.IndexByte(f.Col, '.'); i >= 0 {
		return f.Col[i+1:]
	}
	return f.Col
}

// Cond filters rows. In Where, Col is an alias-qualified column; in Having,
// Col names an aggregate output from Select.
type Cond struct {
	Col   string
	Op    CompareOp
	Value Value
}

// JoinOn is one equality pair of an inner equi-join.
type JoinOn struct {
	Left  string
	Right string
}

// Join adds a relation under an alias, inner-joined on all On pairs.
type Join struct {
	Relation string
	Alias    string
	On       []JoinOn
}

type Order struct {
	Key  string // output column name
	Desc bool
}

// Pipeline describes one relational read: source and joins, row filters,
// grouping with aggregates and having, ordering, limit, and optional
// distinct projection.
type Pipeline struct {
	From     string
	Alias    string
	Joins    []Join
	Where    []Cond
	GroupBy  []string // alias-qualified columns; grouped columns must also be selected
	Select   []Field
	Having   []Cond
	OrderBy  []Order
	Limit    int // 0 = no limit
	Distinct bool
}

// grouped reports whether the pipeline has a grouping stage.
func (p Pipeline) grouped() bool {
	if len(p.GroupBy) > 0 {
		return true
	}
	for _, f := range p.Select {
		if f.Agg != "" {
			return true
		}
	}
	return false
}

// validate checks the pipeline against the schema. Violations are
// programmer errors surfaced as invalid_pipeline by the adapters.
func (p Pipeline) validate() error {
	scope := map[string]string{} // alias -> relation
	addRel := func(rel, alias string) error {
		if _, ok := schema[rel]; !ok {
			return fmt.Errorf("unknown relation %q", rel)
		}
		if alias == "" {
			alias = rel
		}
		if _, dup := scope[alias]; dup {
			return fmt.Errorf("duplicate alias %q", alias)
		}
		scope[alias] = rel
		return nil
	}
	if err := addRel(p.From, p.Alias); err != nil {
		return err
	}
	for _, j := range p.Joins {
		if err := addRel(j.Relation, j.Alias); err != nil {
			return err
		}
		if len(j.On) == 0 {
			return fmt.Errorf("join on %q has no equality pairs", j.Relation)
		}
	}

	checkCol := func(ref string) error {
		alias, col, ok := strings.Cut(ref, ".")
		if !ok {
			return fmt.Errorf("column ref %q is not alias-qualified", ref)
		}
		rel, ok := scope[alias]
		if !ok {
			return fmt.Errorf("unknown alias %q in ref %q", alias, ref)
		}
		for _, c := range schema[rel] {
			if c == col {
				return nil
			}
		}
		return fmt.Errorf("relation %q has no column %q", rel, col)
	}

	for _, j := range p.Joins {
		for _, on := range j.On {
			if err := checkCol(on.Left); err != nil {
				return err
			}
			if err := checkCol(on.Right); err != nil {
				return err
			}
		}
	}
	for _, c := range p.Where {
		if err := checkCol(c.Col); err != nil {
			return err
		}
	}
	for _, g := range p.GroupBy {
		if err := checkCol(g); err != nil {
			return err
		}
	}

	if len(p.Select) == 0 {
		return fmt.Errorf("pipeline selects no fields")
	}
	outputs := map[string]Field{}
	for _, f := range p.Select {
		if f.Agg == "" || f.Agg == AggCountCol || f.Agg == AggCountDistinct ||
			f.Agg == AggAvg || f.Agg == AggMin || f.Agg == AggMax {
			if f.Col == "" && f.Agg != "" {
				return fmt.Errorf("aggregate %s needs a column", f.Agg)
			}
		}
		if f.Col != "" {
			if err := checkCol(f.Col); err != nil {
				return err
			}
		}
		if f.Agg == "" && p.grouped() {
			found := false
			for _, g := range p.GroupBy {
				if g == f.Col {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("selected column %q is not grouped", f.Col)
			}
		}
		name := f.Name()
		if name == "" {
			return fmt.Errorf("aggregate field needs an output name")
		}
		if _, dup := outputs[name]; dup {
			return fmt.Errorf("duplicate output name %q", name)
		}
		outputs[name] = f
	}

	for _, h := range p.Having {
		f, ok := outputs[h.Col]
		if !ok || f.Agg == "" {
			return fmt.Errorf("having references %q which is not a selected aggregate", h.Col)
		}
	}
	for _, o := range p.OrderBy {
		if _, ok := outputs[o.Key]; !ok {
			return fmt.Errorf("order by references unknown output %q", o.Key)
		}
	}
	return nil
}
