package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
)

// Studio names matched exactly by ActorsInBothStudios.
const (
	studioMarvel = "Marvel"
	studioWarner = "Warner Bros."
)

// AmericanProducersByFinancials lists USA-nationality producers of movies
// with box office >= boxOfficeMin and budget <= budgetMax.
func (c *Catalog) AmericanProducersByFinancials(ctx context.Context, boxOfficeMin, budgetMax float64) ([]model.ProducerFinancials, error) {
	if err := requireFinite("box office minimum", boxOfficeMin); err != nil {
		return nil, err
	}
	if err := requireFinite("budget maximum", budgetMax); err != nil {
		return nil, err
	}
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelRole,
		Alias: "r",
		Joins: []dataset.Join{
			{Relation: dataset.RelPeople, Alias: "p", On: []dataset.JoinOn{{Left: "r.pid", Right: "p.id"}}},
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "r.mpid", Right: "mp.id"}}},
			{Relation: dataset.RelMovie, Alias: "m", On: []dataset.JoinOn{{Left: "mp.id", Right: "m.mpid"}}},
		},
		Where: []dataset.Cond{
			{Col: "r.role_name", Op: dataset.OpEq, Value: model.RoleProducer},
			{Col: "p.nationality", Op: dataset.OpEq, Value: "USA"},
			{Col: "m.boxoffice_collection", Op: dataset.OpGe, Value: boxOfficeMin},
			{Col: "mp.budget", Op: dataset.OpLe, Value: budgetMax},
		},
		Select: []dataset.Field{
			{Col: "p.name", As: "producer_name"},
			{Col: "mp.name", As: "movie_name"},
			{Col: "m.boxoffice_collection"},
			{Col: "mp.budget"},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.ProducerFinancials, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ProducerFinancials{
			Producer:  rowString(r, "producer_name"),
			Picture:   rowString(r, "movie_name"),
			BoxOffice: rowFloat(r, "boxoffice_collection"),
			Budget:    rowFloat(r, "budget"),
		})
	}
	return out, nil
}

// MultiRolePeopleAboveRating lists (person, picture) pairs where the person
// holds more than one role row in a picture rated above the threshold. Role
// rows are counted with multiplicity, including repeated role names.
func (c *Catalog) MultiRolePeopleAboveRating(ctx context.Context, ratingThreshold float64) ([]model.RoleTally, error) {
	if err := requireFinite("rating threshold", ratingThreshold); err != nil {
		return nil, err
	}
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelRole,
		Alias: "r",
		Joins: []dataset.Join{
			{Relation: dataset.RelPeople, Alias: "p", On: []dataset.JoinOn{{Left: "r.pid", Right: "p.id"}}},
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "r.mpid", Right: "mp.id"}}},
		},
		Where: []dataset.Cond{
			{Col: "mp.rating", Op: dataset.OpGt, Value: ratingThreshold},
		},
		GroupBy: []string{"p.id", "p.name", "mp.id", "mp.name"},
		Select: []dataset.Field{
			{Col: "p.name", As: "person_name"},
			{Col: "mp.name", As: "motion_picture_name"},
			{Col: "r.role_name", Agg: dataset.AggCountCol, As: "role_count"},
		},
		Having: []dataset.Cond{
			{Col: "role_count", Op: dataset.OpGt, Value: int64(1)},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.RoleTally, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.RoleTally{
			Person:  rowString(r, "person_name"),
			Picture: rowString(r, "motion_picture_name"),
			Roles:   rowInt(r, "role_count"),
		})
	}
	return out, nil
}

// ActorsInBothStudios lists people with role rows in pictures from both
// Marvel and Warner Bros. productions, with the distinct picture names they
// appeared in across the two. One row per person, ordered by person id.
func (c *Catalog) ActorsInBothStudios(ctx context.Context) ([]model.StudioActor, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelPeople,
		Alias: "p",
		Joins: []dataset.Join{
			{Relation: dataset.RelRole, Alias: "r", On: []dataset.JoinOn{{Left: "p.id", Right: "r.pid"}}},
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "r.mpid", Right: "mp.id"}}},
		},
		Where: []dataset.Cond{
			{Col: "mp.production", Op: dataset.OpIn, Value: []dataset.Value{studioMarvel, studioWarner}},
		},
		Select: []dataset.Field{
			{Col: "p.id", As: "pid"},
			{Col: "p.name", As: "actor_name"},
			{Col: "mp.production", As: "production"},
			{Col: "mp.name", As: "picture_name"},
		},
	})
	if err != nil {
		return nil, err
	}

	type acc struct {
		name        string
		productions map[string]struct{}
		pictures    map[string]struct{}
	}
	byID := map[int64]*acc{}
	var ids []int64
	for _, r := range rows {
		id := rowInt(r, "pid")
		a, ok := byID[id]
		if !ok {
			a = &acc{
				name:        rowString(r, "actor_name"),
				productions: map[string]struct{}{},
				pictures:    map[string]struct{}{},
			}
			byID[id] = a
			ids = append(ids, id)
		}
		a.productions[rowString(r, "production")] = struct{}{}
		a.pictures[rowString(r, "picture_name")] = struct{}{}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]model.StudioActor, 0, len(ids))
	for _, id := range ids {
		a := byID[id]
		if len(a.productions) != 2 {
			continue
		}
		pictures := make([]string, 0, len(a.pictures))
		for name := range a.pictures {
			pictures = append(pictures, name)
		}
		sort.Strings(pictures)
		out = append(out, model.StudioActor{Actor: a.name, Pictures: pictures})
	}
	return out, nil
}

// ActorsSharingBirthday pairs actors with equal, non-NULL dates of birth.
// Pairing on person id with a strict less-than emits each unordered pair
// exactly once; ids are a stable surrogate, so store iteration order never
// matters.
func (c *Catalog) ActorsSharingBirthday(ctx context.Context) ([]model.BirthdayPair, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelPeople,
		Alias: "p",
		Joins: []dataset.Join{
			{Relation: dataset.RelRole, Alias: "r", On: []dataset.JoinOn{{Left: "p.id", Right: "r.pid"}}},
		},
		Where: []dataset.Cond{
			{Col: "r.role_name", Op: dataset.OpEq, Value: model.RoleActor},
			{Col: "p.dob", Op: dataset.OpNotNull},
		},
		Select: []dataset.Field{
			{Col: "p.id", As: "id"},
			{Col: "p.name", As: "name"},
			{Col: "p.dob", As: "dob"},
		},
		Distinct: true,
	})
	if err != nil {
		return nil, err
	}

	type actor struct {
		id   int64
		name string
		dob  time.Time
	}
	actors := make([]actor, 0, len(rows))
	for _, r := range rows {
		actors = append(actors, actor{
			id:   rowInt(r, "id"),
			name: rowString(r, "name"),
			dob:  rowTime(r, "dob"),
		})
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].id < actors[j].id })

	var out []model.BirthdayPair
	for i := 0; i < len(actors); i++ {
		for j := i + 1; j < len(actors); j++ {
			if !actors[i].dob.Equal(actors[j].dob) {
				continue
			}
			out = append(out, model.BirthdayPair{
				First:    actors[i].name,
				Second:   actors[j].name,
				Birthday: actors[i].dob,
			})
		}
	}
	return out, nil
}
