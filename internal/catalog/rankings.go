package catalog

import (
	"context"

	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
)

// TopThrillerMoviesExclusiveBoston returns the two highest-rated thriller
// pictures shot exclusively in Boston. Exclusivity is grouped per picture
// (distinct-city count of 1 and that city is Boston), so duplicate Boston
// rows do not disqualify a picture and any second city does. Rank-2 ties
// break by id ascending.
func (c *Catalog) TopThrillerMoviesExclusiveBoston(ctx context.Context) ([]model.RatedPicture, error) {
	exclusive, err := c.store.Run(ctx, dataset.Pipeline{
		From:    dataset.RelLocation,
		Alias:   "loc",
		GroupBy: []string{"loc.mpid"},
		Select: []dataset.Field{
			{Col: "loc.mpid", As: "mpid"},
			{Col: "loc.city", Agg: dataset.AggCountDistinct, As: "city_count"},
			{Col: "loc.city", Agg: dataset.AggMin, As: "only_city"},
		},
		Having: []dataset.Cond{
			{Col: "city_count", Op: dataset.OpEq, Value: int64(1)},
			{Col: "only_city", Op: dataset.OpEq, Value: "Boston"},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(exclusive) == 0 {
		return []model.RatedPicture{}, nil
	}
	ids := make([]dataset.Value, 0, len(exclusive))
	for _, r := range exclusive {
		ids = append(ids, rowInt(r, "mpid"))
	}

	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelMotionPicture,
		Alias: "mp",
		Joins: []dataset.Join{
			{Relation: dataset.RelGenre, Alias: "g", On: []dataset.JoinOn{{Left: "mp.id", Right: "g.mpid"}}},
		},
		Where: []dataset.Cond{
			{Col: "g.genre_name", Op: dataset.OpEq, Value: "thriller"},
			{Col: "mp.id", Op: dataset.OpIn, Value: ids},
		},
		Select: []dataset.Field{
			{Col: "mp.id", As: "id"},
			{Col: "mp.name"},
			{Col: "mp.rating"},
		},
		OrderBy: []dataset.Order{{Key: "rating", Desc: true}, {Key: "id"}},
		Limit:   2,
	})
	if err != nil {
		return nil, err
	}
	return ratedPictures(rows), nil
}

// MoviesLikedByYoungUsers lists pictures with strictly more than minLikes
// likes from users younger than maxAge, with the like count from that age
// group.
func (c *Catalog) MoviesLikedByYoungUsers(ctx context.Context, minLikes, maxAge int64) ([]model.LikeTally, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelLikes,
		Alias: "l",
		Joins: []dataset.Join{
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "l.mpid", Right: "mp.id"}}},
			{Relation: dataset.RelUsers, Alias: "u", On: []dataset.JoinOn{{Left: "l.uemail", Right: "u.email"}}},
		},
		Where: []dataset.Cond{
			{Col: "u.age", Op: dataset.OpLt, Value: maxAge},
		},
		GroupBy: []string{"mp.id", "mp.name"},
		Select: []dataset.Field{
			{Col: "mp.name", As: "movie_name"},
			{Agg: dataset.AggCount, As: "like_count"},
		},
		Having: []dataset.Cond{
			{Col: "like_count", Op: dataset.OpGt, Value: minLikes},
		},
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.LikeTally, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.LikeTally{
			Picture: rowString(r, "movie_name"),
			Likes:   rowInt(r, "like_count"),
		})
	}
	return out, nil
}

// MoviesAboveComedyAverage lists pictures rated strictly above the average
// rating of comedy-tagged pictures, highest first. With no comedy ratings
// the average is NULL and the result is empty.
func (c *Catalog) MoviesAboveComedyAverage(ctx context.Context) ([]model.RatedPicture, error) {
	avgRows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelMotionPicture,
		Alias: "mp",
		Joins: []dataset.Join{
			{Relation: dataset.RelGenre, Alias: "g", On: []dataset.JoinOn{{Left: "mp.id", Right: "g.mpid"}}},
		},
		Where: []dataset.Cond{
			{Col: "g.genre_name", Op: dataset.OpEq, Value: "comedy"},
		},
		Select: []dataset.Field{
			{Col: "mp.rating", Agg: dataset.AggAvg, As: "avg_rating"},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(avgRows) == 0 || avgRows[0]["avg_rating"] == nil {
		return []model.RatedPicture{}, nil
	}
	avg := rowFloat(avgRows[0], "avg_rating")

	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelMotionPicture,
		Alias: "mp",
		Where: []dataset.Cond{
			{Col: "mp.rating", Op: dataset.OpGt, Value: avg},
		},
		Select: []dataset.Field{
			{Col: "mp.id", As: "id"},
			{Col: "mp.name"},
			{Col: "mp.rating"},
		},
		OrderBy: []dataset.Order{{Key: "rating", Desc: true}, {Key: "id"}},
	})
	if err != nil {
		return nil, err
	}
	return ratedPictures(rows), nil
}

// Top5MoviesByPeopleAndRoles ranks pictures by distinct people involved,
// then by role-row count, then by id ascending for reproducible output, and
// returns the top 5.
func (c *Catalog) Top5MoviesByPeopleAndRoles(ctx context.Context) ([]model.CastSize, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelRole,
		Alias: "r",
		Joins: []dataset.Join{
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "r.mpid", Right: "mp.id"}}},
		},
		GroupBy: []string{"mp.id", "mp.name"},
		Select: []dataset.Field{
			{Col: "mp.id", As: "id"},
			{Col: "mp.name", As: "movie_name"},
			{Col: "r.pid", Agg: dataset.AggCountDistinct, As: "people_count"},
			{Col: "r.role_name", Agg: dataset.AggCountCol, As: "role_count"},
		},
		OrderBy: []dataset.Order{
			{Key: "people_count", Desc: true},
			{Key: "role_count", Desc: true},
			{Key: "id"},
		},
		Limit: 5,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.CastSize, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.CastSize{
			Picture: rowString(r, "movie_name"),
			People:  rowInt(r, "people_count"),
			Roles:   rowInt(r, "role_count"),
		})
	}
	return out, nil
}

func ratedPictures(rows []dataset.Row) []model.RatedPicture {
	out := make([]model.RatedPicture, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.RatedPicture{
			Name:   rowString(r, "name"),
			Rating: rowFloat(r, "rating"),
		})
	}
	return out
}
