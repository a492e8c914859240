package catalog

import (
	"context"

	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
)

// AwardsAboveThreshold lists the (person, picture, year) groups holding
// strictly more than k award rows. Rows with a NULL award year are excluded
// from grouping.
func (c *Catalog) AwardsAboveThreshold(ctx context.Context, k int64) ([]model.AwardTally, error) {
	if k < 0 {
		return nil, qerr.InvalidParameter("award threshold must be >= 0", nil)
	}
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelAward,
		Alias: "a",
		Joins: []dataset.Join{
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "a.mpid", Right: "mp.id"}}},
			{Relation: dataset.RelPeople, Alias: "p", On: []dataset.JoinOn{{Left: "a.pid", Right: "p.id"}}},
		},
		Where: []dataset.Cond{
			{Col: "a.award_year", Op: dataset.OpNotNull},
		},
		GroupBy: []string{"a.mpid", "a.pid", "a.award_year", "p.name", "mp.name"},
		Select: []dataset.Field{
			{Col: "p.name", As: "person_name"},
			{Col: "mp.name", As: "motion_picture_name"},
			{Col: "a.award_year", As: "award_year"},
			{Col: "a.award_name", Agg: dataset.AggCountCol, As: "award_count"},
		},
		Having: []dataset.Cond{
			{Col: "award_count", Op: dataset.OpGt, Value: k},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.AwardTally, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.AwardTally{
			Person:  rowString(r, "person_name"),
			Picture: rowString(r, "motion_picture_name"),
			Year:    rowInt(r, "award_year"),
			Awards:  rowInt(r, "award_count"),
		})
	}
	return out, nil
}

// YoungestOldestAwardedActors computes every awarded actor's age at award
// time (award year minus birth year) and returns the complete tie sets at
// the minimum and maximum age. Rows missing the award year or date of birth
// are excluded rather than treated as zero.
func (c *Catalog) YoungestOldestAwardedActors(ctx context.Context) (model.AgeExtremes, error) {
	res := model.AgeExtremes{Youngest: []model.ActorAge{}, Oldest: []model.ActorAge{}}
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelAward,
		Alias: "a",
		Joins: []dataset.Join{
			{Relation: dataset.RelPeople, Alias: "p", On: []dataset.JoinOn{{Left: "a.pid", Right: "p.id"}}},
			{Relation: dataset.RelRole, Alias: "r", On: []dataset.JoinOn{
				{Left: "p.id", Right: "r.pid"},
				{Left: "a.mpid", Right: "r.mpid"},
			}},
		},
		Where: []dataset.Cond{
			{Col: "r.role_name", Op: dataset.OpEq, Value: model.RoleActor},
			{Col: "a.award_year", Op: dataset.OpNotNull},
			{Col: "p.dob", Op: dataset.OpNotNull},
		},
		Select: []dataset.Field{
			{Col: "p.name"},
			{Col: "a.award_year", As: "award_year"},
			{Col: "p.dob", As: "dob"},
		},
	})
	if err != nil {
		return res, err
	}
	if len(rows) == 0 {
		return res, nil
	}

	type aged struct {
		name string
		age  int64
	}
	all := make([]aged, 0, len(rows))
	minAge, maxAge := int64(0), int64(0)
	for i, r := range rows {
		age := rowInt(r, "award_year") - int64(rowTime(r, "dob").Year())
		all = append(all, aged{name: rowString(r, "name"), age: age})
		if i == 0 || age < minAge {
			minAge = age
		}
		if i == 0 || age > maxAge {
			maxAge = age
		}
	}
	for _, a := range all {
		if a.age == minAge {
			res.Youngest = append(res.Youngest, model.ActorAge{Name: a.name, Age: a.age})
		}
		if a.age == maxAge {
			res.Oldest = append(res.Oldest, model.ActorAge{Name: a.name, Age: a.age})
		}
	}
	return res, nil
}
