package catalog_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sherrenjie/YourOwnIMDb/internal/catalog"
	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(dataset.NewMemory(fixtureSnapshot()))
}

func TestListTables(t *testing.T) {
	got, err := newCatalog(t).ListTables(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{
		"award", "genre", "likes", "location", "motion_picture",
		"movie", "people", "role", "series", "users",
	}, got)
}

func TestSearchMoviesByName(t *testing.T) {
	c := newCatalog(t)

	got, err := c.SearchMoviesByName(context.Background(), "ROAD")
	require.NoError(t, err)
	require.Equal(t, []model.MovieSummary{
		{Name: "Middle Road", Rating: 7.0, Production: "Nimbus", Budget: 18e6},
		{Name: "High Road", Rating: 7.1, Production: "Nimbus", Budget: 22e6},
	}, got, "match is case-insensitive and ordered by id")

	got, err = c.SearchMoviesByName(context.Background(), "no such film")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearchLikedMovies(t *testing.T) {
	c := newCatalog(t)

	got, err := c.SearchLikedMovies(context.Background(), "a@example.com")
	require.NoError(t, err)
	require.Equal(t, []model.MovieSummary{
		{Name: "Iron Horizon", Rating: 7.5, Production: "Marvel", Budget: 200e6},
		{Name: "Gotham Nights", Rating: 8.2, Production: "Warner Bros.", Budget: 150e6},
	}, got)

	got, err = c.SearchLikedMovies(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearchByCountry(t *testing.T) {
	c := newCatalog(t)

	got, err := c.SearchByCountry(context.Background(), "USA")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"Iron Horizon", "Harbor Watch", "Silent Pier", "Cold Channel", "Back Bay",
	}, got, "pictures with several locations in the country appear once")

	got, err = c.SearchByCountry(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestDirectorsByZip(t *testing.T) {
	c := newCatalog(t)

	got, err := c.DirectorsByZip(context.Background(), "02108")
	require.NoError(t, err)
	require.Equal(t, []model.DirectorSeries{
		{Director: "Felix Hart", Series: "Harbor Watch"},
	}, got, "duplicate location rows in the zip collapse to one pair; movies in the zip are ignored")

	got, err = c.DirectorsByZip(context.Background(), "99999")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestAwardsAboveThreshold(t *testing.T) {
	c := newCatalog(t)

	got, err := c.AwardsAboveThreshold(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, []model.AwardTally{
		{Person: "Alex Mercer", Picture: "Iron Horizon", Year: 2010, Awards: 2},
	}, got)

	// strict threshold: a count of exactly k does not qualify
	got, err = c.AwardsAboveThreshold(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, got)

	// NULL-year awards are excluded before grouping, so Alex counts 2 not 3
	got, err = c.AwardsAboveThreshold(context.Background(), 0)
	require.NoError(t, err)
	require.ElementsMatch(t, []model.AwardTally{
		{Person: "Alex Mercer", Picture: "Iron Horizon", Year: 2010, Awards: 2},
		{Person: "Dana Flores", Picture: "Silent Pier", Year: 2018, Awards: 1},
		{Person: "Gina Idris", Picture: "Back Bay", Year: 2020, Awards: 1},
		{Person: "Hector James", Picture: "Gotham Nights", Year: 1995, Awards: 1},
		{Person: "Ivy Kane", Picture: "Silent Pier", Year: 2020, Awards: 1},
	}, got)

	_, err = c.AwardsAboveThreshold(context.Background(), -1)
	require.True(t, qerr.Is(err, qerr.CodeInvalidParameter))
}

func TestYoungestOldestAwardedActors(t *testing.T) {
	c := newCatalog(t)

	got, err := c.YoungestOldestAwardedActors(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []model.ActorAge{
		{Name: "Gina Idris", Age: 20},
		{Name: "Ivy Kane", Age: 20},
	}, got.Youngest, "the full minimum-age tie set is returned")
	require.Equal(t, []model.ActorAge{
		{Name: "Hector James", Age: 55},
	}, got.Oldest)
}

func TestYoungestOldestAwardedActorsEmpty(t *testing.T) {
	c := catalog.New(dataset.NewMemory(dataset.Snapshot{}))

	got, err := c.YoungestOldestAwardedActors(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.Youngest)
	require.NotNil(t, got.Oldest)
	require.Empty(t, got.Youngest)
	require.Empty(t, got.Oldest)
}

func TestAmericanProducersByFinancials(t *testing.T) {
	c := newCatalog(t)

	got, err := c.AmericanProducersByFinancials(context.Background(), 5e8, 2.5e8)
	require.NoError(t, err)
	require.Equal(t, []model.ProducerFinancials{
		{Producer: "Brianna Cole", Picture: "Iron Horizon", BoxOffice: 900e6, Budget: 200e6},
	}, got, "non-USA producers and series producers are excluded")

	// both bounds are inclusive
	got, err = c.AmericanProducersByFinancials(context.Background(), 900e6, 200e6)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = c.AmericanProducersByFinancials(context.Background(), 900e6+1, 2.5e8)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = c.AmericanProducersByFinancials(context.Background(), 5e8, 200e6-1)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = c.AmericanProducersByFinancials(context.Background(), math.NaN(), 2.5e8)
	require.True(t, qerr.Is(err, qerr.CodeInvalidParameter))
	_, err = c.AmericanProducersByFinancials(context.Background(), 5e8, math.Inf(1))
	require.True(t, qerr.Is(err, qerr.CodeInvalidParameter))
}

func TestMultiRolePeopleAboveRating(t *testing.T) {
	c := newCatalog(t)

	got, err := c.MultiRolePeopleAboveRating(context.Background(), 5.0)
	require.NoError(t, err)
	require.ElementsMatch(t, []model.RoleTally{
		{Person: "Alex Mercer", Picture: "Iron Horizon", Roles: 2},
		{Person: "Brianna Cole", Picture: "Silent Pier", Roles: 2},
		{Person: "Carl Donner", Picture: "Laugh Track", Roles: 2},
		{Person: "Felix Hart", Picture: "Harbor Watch", Roles: 2},
	}, got, "repeated identical role rows count with multiplicity")

	got, err = c.MultiRolePeopleAboveRating(context.Background(), 6.5)
	require.NoError(t, err)
	require.ElementsMatch(t, []model.RoleTally{
		{Person: "Alex Mercer", Picture: "Iron Horizon", Roles: 2},
		{Person: "Brianna Cole", Picture: "Silent Pier", Roles: 2},
		{Person: "Felix Hart", Picture: "Harbor Watch", Roles: 2},
	}, got)

	// strict threshold: a picture rated exactly at the threshold is excluded
	got, err = c.MultiRolePeopleAboveRating(context.Background(), 8.9)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTopThrillerMoviesExclusiveBoston(t *testing.T) {
	c := newCatalog(t)

	got, err := c.TopThrillerMoviesExclusiveBoston(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.RatedPicture{
		{Name: "Silent Pier", Rating: 8.9},
		{Name: "Back Bay", Rating: 7.9},
	}, got, "a second city disqualifies; duplicate Boston rows do not")
}

func TestTopThrillerMoviesExclusiveBostonNoCandidates(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Locations = []model.Location{
		{PictureID: 4, City: "Chicago", Country: "USA", Zip: "60601"},
	}
	c := catalog.New(dataset.NewMemory(snap))

	got, err := c.TopThrillerMoviesExclusiveBoston(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestMoviesLikedByYoungUsers(t *testing.T) {
	c := newCatalog(t)

	got, err := c.MoviesLikedByYoungUsers(context.Background(), 1, 26)
	require.NoError(t, err)
	require.ElementsMatch(t, []model.LikeTally{
		{Picture: "Iron Horizon", Likes: 3},
		{Picture: "Gotham Nights", Likes: 2},
	}, got)

	// strict minimum: exactly minLikes does not qualify
	got, err = c.MoviesLikedByYoungUsers(context.Background(), 2, 26)
	require.NoError(t, err)
	require.Equal(t, []model.LikeTally{{Picture: "Iron Horizon", Likes: 3}}, got)

	// strict age bound: a user aged exactly maxAge is not counted
	got, err = c.MoviesLikedByYoungUsers(context.Background(), 1, 25)
	require.NoError(t, err)
	require.ElementsMatch(t, []model.LikeTally{
		{Picture: "Iron Horizon", Likes: 2},
		{Picture: "Gotham Nights", Likes: 2},
	}, got)
}

func TestActorsInBothStudios(t *testing.T) {
	got, err := newCatalog(t).ActorsInBothStudios(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.StudioActor{
		{Actor: "Alex Mercer", Pictures: []string{"Gotham Nights", "Iron Horizon"}},
	}, got, "people appearing in only one of the two studios are excluded")
}

func TestMoviesAboveComedyAverage(t *testing.T) {
	c := newCatalog(t)

	// comedy ratings 6.0 and 8.0 average to 7.0; the comparison is strict,
	// so the picture rated exactly 7.0 is excluded
	got, err := c.MoviesAboveComedyAverage(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.RatedPicture{
		{Name: "Cold Channel", Rating: 9.1},
		{Name: "Silent Pier", Rating: 8.9},
		{Name: "Gotham Nights", Rating: 8.2},
		{Name: "Second Laugh", Rating: 8.0},
		{Name: "Back Bay", Rating: 7.9},
		{Name: "Iron Horizon", Rating: 7.5},
		{Name: "High Road", Rating: 7.1},
	}, got)
}

func TestMoviesAboveComedyAverageNoComedies(t *testing.T) {
	snap := fixtureSnapshot()
	genres := snap.Genres[:0:0]
	for _, g := range snap.Genres {
		if g.Name != "comedy" {
			genres = append(genres, g)
		}
	}
	snap.Genres = genres
	c := catalog.New(dataset.NewMemory(snap))

	got, err := c.MoviesAboveComedyAverage(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestTop5MoviesByPeopleAndRoles(t *testing.T) {
	got, err := newCatalog(t).Top5MoviesByPeopleAndRoles(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.CastSize{
		{Picture: "Gotham Nights", People: 4, Roles: 4},
		{Picture: "Silent Pier", People: 3, Roles: 4},
		{Picture: "Iron Horizon", People: 2, Roles: 3},
		{Picture: "Harbor Watch", People: 1, Roles: 2},
		{Picture: "Laugh Track", People: 1, Roles: 2},
	}, got, "ties on people break by role count, then id ascending")
}

func TestActorsSharingBirthday(t *testing.T) {
	birthday := time.Date(1980, time.March, 14, 0, 0, 0, 0, time.UTC)

	got, err := newCatalog(t).ActorsSharingBirthday(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.BirthdayPair{
		{First: "Alex Mercer", Second: "Carl Donner", Birthday: birthday},
		{First: "Alex Mercer", Second: "Erin Gates", Birthday: birthday},
		{First: "Carl Donner", Second: "Erin Gates", Birthday: birthday},
	}, got, "three actors sharing a birthday produce exactly three pairs")
}

func TestEmptyStore(t *testing.T) {
	c := catalog.New(dataset.NewMemory(dataset.Snapshot{}))
	ctx := context.Background()

	movies, err := c.SearchMoviesByName(ctx, "anything")
	require.NoError(t, err)
	require.Empty(t, movies)

	tallies, err := c.AwardsAboveThreshold(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, tallies)

	pairs, err := c.ActorsSharingBirthday(ctx)
	require.NoError(t, err)
	require.Empty(t, pairs)

	likes, err := c.MoviesLikedByYoungUsers(ctx, 0, 100)
	require.NoError(t, err)
	require.Empty(t, likes)
}
