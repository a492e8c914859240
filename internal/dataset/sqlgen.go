package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// buildSQL compiles a validated pipeline into one parameterized Postgres
// statement. It is a pure function so the compiler can be tested without a
// database.
func buildSQL(p Pipeline) (string, []any, error) {
	var b strings.Builder
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	b.WriteString("SELECT ")
	if p.Distinct {
		b.WriteString("DISTINCT ")
	}
	for i, f := range p.Select {
		if i > 0 {
			b.WriteString(", ")
		}
		expr, err := fieldExpr(f)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(expr)
		b.WriteString(" AS ")
		b.WriteString(f.Name())
	}

	b.WriteString(" FROM ")
	b.WriteString(sourceExpr(p.From, p.Alias))
	for _, j := range p.Joins {
		b.WriteString(" JOIN ")
		b.WriteString(sourceExpr(j.Relation, j.Alias))
		b.WriteString(" ON ")
		for i, on := range j.On {
			if i > 0 {
				b.WriteString(" AND ")
			}
			b.WriteString(on.Left)
			b.WriteString(" = ")
			b.WriteString(on.Right)
		}
	}

	if len(p.Where) > 0 {
		b.WriteString(" WHERE ")
		if err := writeConds(&b, p.Where, arg, nil); err != nil {
			return "", nil, err
		}
	}

	if len(p.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(p.GroupBy, ", "))
	}

	if len(p.Having) > 0 {
		// HAVING cannot reference output aliases, so re-inline the
		// aggregate expression for each referenced field.
		exprs := map[string]string{}
		for _, f := range p.Select {
			if f.Agg == "" {
				continue
			}
			e, err := fieldExpr(f)
			if err != nil {
				return "", nil, err
			}
			exprs[f.Name()] = e
		}
		b.WriteString(" HAVING ")
		if err := writeConds(&b, p.Having, arg, exprs); err != nil {
			return "", nil, err
		}
	}

	if len(p.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range p.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.Key)
			if o.Desc {
				b.WriteString(" DESC")
			} else {
				b.WriteString(" ASC")
			}
		}
	}

	if p.Limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(p.Limit))
	}
	return b.String(), args, nil
}

func sourceExpr(rel, alias string) string {
	if alias == "" || alias == rel {
		return rel
	}
	return rel + " AS " + alias
}

func fieldExpr(f Field) (string, error) {
	switch f.Agg {
	case "":
		return f.Col, nil
	case AggCount:
		return "COUNT(*)", nil
	case AggCountCol:
		return "COUNT(" + f.Col + ")", nil
	case AggCountDistinct:
		return "COUNT(DISTINCT " + f.Col + ")", nil
	case AggAvg:
		return "AVG(" + f.Col + ")", nil
	case AggMin:
		return "MIN(" + f.Col + ")", nil
	case AggMax:
		return "MAX(" + f.Col + ")", nil
	}
	return "", fmt.Errorf("unknown aggregate %q", f.Agg)
}

// writeConds renders AND-joined conditions. When exprs is non-nil the
// condition columns are looked up as aggregate output names (HAVING).
func writeConds(b *strings.Builder, conds []Cond, arg func(any) string, exprs map[string]string) error {
	for i, c := range conds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		lhs := c.Col
		if exprs != nil {
			e, ok := exprs[c.Col]
			if !ok {
				return fmt.Errorf("having references unknown aggregate %q", c.Col)
			}
			lhs = e
		}
		switch c.Op {
		case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
			b.WriteString(lhs)
			b.WriteString(" ")
			b.WriteString(string(c.Op))
			b.WriteString(" ")
			b.WriteString(arg(c.Value))
		case OpContainsFold:
			s, _ := c.Value.(string)
			b.WriteString(lhs)
			b.WriteString(" ILIKE ")
			b.WriteString(arg("%" + escapeLike(s) + "%"))
		case OpIn:
			set, _ := c.Value.([]Value)
			b.WriteString(lhs)
			b.WriteString(" = ANY(")
			b.WriteString(arg(set))
			b.WriteString(")")
		case OpNotNull:
			b.WriteString(lhs)
			b.WriteString(" IS NOT NULL")
		default:
			return fmt.Errorf("unknown operator %q", c.Op)
		}
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
