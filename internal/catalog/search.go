package catalog

import (
	"context"

	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
)

// SearchMoviesByName lists pictures whose name contains the given substring,
// case-insensitively, ordered by id for stable output.
func (c *Catalog) SearchMoviesByName(ctx context.Context, name string) ([]model.MovieSummary, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelMotionPicture,
		Alias: "mp",
		Where: []dataset.Cond{
			{Col: "mp.name", Op: dataset.OpContainsFold, Value: name},
		},
		Select: []dataset.Field{
			{Col: "mp.id", As: "id"},
			{Col: "mp.name"},
			{Col: "mp.rating"},
			{Col: "mp.production"},
			{Col: "mp.budget"},
		},
		OrderBy: []dataset.Order{{Key: "id"}},
	})
	if err != nil {
		return nil, err
	}
	return movieSummaries(rows), nil
}

// SearchLikedMovies lists the pictures a user has liked, in like insertion
// order.
func (c *Catalog) SearchLikedMovies(ctx context.Context, userEmail string) ([]model.MovieSummary, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelLikes,
		Alias: "l",
		Joins: []dataset.Join{
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "l.mpid", Right: "mp.id"}}},
		},
		Where: []dataset.Cond{
			{Col: "l.uemail", Op: dataset.OpEq, Value: userEmail},
		},
		Select: []dataset.Field{
			{Col: "mp.name"},
			{Col: "mp.rating"},
			{Col: "mp.production"},
			{Col: "mp.budget"},
		},
	})
	if err != nil {
		return nil, err
	}
	return movieSummaries(rows), nil
}

// SearchByCountry lists the distinct names of pictures with a shooting
// location in the given country. A picture with several locations in that
// country appears once.
func (c *Catalog) SearchByCountry(ctx context.Context, country string) ([]string, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelMotionPicture,
		Alias: "mp",
		Joins: []dataset.Join{
			{Relation: dataset.RelLocation, Alias: "loc", On: []dataset.JoinOn{{Left: "mp.id", Right: "loc.mpid"}}},
		},
		Where: []dataset.Cond{
			{Col: "loc.country", Op: dataset.OpEq, Value: country},
		},
		Select:   []dataset.Field{{Col: "mp.name"}},
		Distinct: true,
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, rowString(r, "name"))
	}
	return names, nil
}

// DirectorsByZip lists the distinct (director, series) pairs for TV series
// shot in the given zip code.
func (c *Catalog) DirectorsByZip(ctx context.Context, zip string) ([]model.DirectorSeries, error) {
	rows, err := c.store.Run(ctx, dataset.Pipeline{
		From:  dataset.RelPeople,
		Alias: "p",
		Joins: []dataset.Join{
			{Relation: dataset.RelRole, Alias: "r", On: []dataset.JoinOn{{Left: "p.id", Right: "r.pid"}}},
			{Relation: dataset.RelMotionPicture, Alias: "mp", On: []dataset.JoinOn{{Left: "r.mpid", Right: "mp.id"}}},
			{Relation: dataset.RelSeries, Alias: "s", On: []dataset.JoinOn{{Left: "mp.id", Right: "s.mpid"}}},
			{Relation: dataset.RelLocation, Alias: "loc", On: []dataset.JoinOn{{Left: "mp.id", Right: "loc.mpid"}}},
		},
		Where: []dataset.Cond{
			{Col: "r.role_name", Op: dataset.OpEq, Value: model.RoleDirector},
			{Col: "loc.zip", Op: dataset.OpEq, Value: zip},
		},
		Select: []dataset.Field{
			{Col: "p.name", As: "director_name"},
			{Col: "mp.name", As: "series_name"},
		},
		Distinct: true,
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.DirectorSeries, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.DirectorSeries{
			Director: rowString(r, "director_name"),
			Series:   rowString(r, "series_name"),
		})
	}
	return out, nil
}

func movieSummaries(rows []dataset.Row) []model.MovieSummary {
	out := make([]model.MovieSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.MovieSummary{
			Name:       rowString(r, "name"),
			Rating:     rowFloat(r, "rating"),
			Production: rowString(r, "production"),
			Budget:     rowFloat(r, "budget"),
		})
	}
	return out
}
