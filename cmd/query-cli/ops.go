package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sherrenjie/YourOwnIMDb/internal/catalog"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
	"github.com/sherrenjie/YourOwnIMDb/pkg/cache"
	"github.com/sherrenjie/YourOwnIMDb/pkg/qerr"
	"github.com/sherrenjie/YourOwnIMDb/pkg/render"
)

// opFlags carries the raw string parameters from the command line. Each
// operation parses only the flags it needs; parse failures surface as
// invalid_parameter before any query runs.
type opFlags struct {
	Op           string
	List         bool
	Name         string
	Email        string
	Country      string
	Zip          string
	K            string
	BoxOfficeMin string
	BudgetMax    string
	Rating       string
	MinLikes     string
	MaxAge       string
}

func (o opFlags) cacheKey() string {
	return cache.ResultKey(o.Op,
		o.Name, o.Email, o.Country, o.Zip, o.K,
		o.BoxOfficeMin, o.BudgetMax, o.Rating, o.MinLikes, o.MaxAge)
}

var opNames = map[string]string{
	"list-tables":           "list the relations in the store",
	"search-movies":         "search pictures by name substring (-name)",
	"liked-movies":          "pictures liked by a user (-email)",
	"by-country":            "distinct picture names by shooting country (-country)",
	"directors-by-zip":      "directors of series shot in a zip code (-zip)",
	"awards-above":          "people with more than k awards for one picture and year (-k)",
	"youngest-oldest":       "youngest and oldest awarded actors, full tie sets",
	"producers":             "American producers by financials (-box-office-min, -budget-max)",
	"multi-role":            "people with multiple roles in pictures above a rating (-rating)",
	"top-thrillers-boston":  "top 2 thrillers shot exclusively in Boston",
	"liked-by-young":        "pictures with many likes from young users (-min-likes, -max-age)",
	"both-studios":          "people with roles in both Marvel and Warner Bros. pictures",
	"above-comedy-average":  "pictures rated above the comedy average",
	"top5-by-people-roles":  "top 5 pictures by people and role counts",
	"shared-birthday":       "actor pairs sharing a date of birth",
}

func printOps() {
	names := make([]string, 0, len(opNames))
	for n := range opNames {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %-22s %s\n", n, opNames[n])
	}
}

func dispatch(ctx context.Context, cat *catalog.Catalog, o opFlags) (render.Table, error) {
	switch o.Op {
	case "list-tables":
		tables, err := cat.ListTables(ctx)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Tables", Headers: []string{"table"}}
		for _, name := range tables {
			t.Rows = append(t.Rows, []string{name})
		}
		return t, nil

	case "search-movies":
		movies, err := cat.SearchMoviesByName(ctx, o.Name)
		if err != nil {
			return render.Table{}, err
		}
		return movieTable("Movies matching "+strconv.Quote(o.Name), movies), nil

	case "liked-movies":
		movies, err := cat.SearchLikedMovies(ctx, o.Email)
		if err != nil {
			return render.Table{}, err
		}
		return movieTable("Movies liked by "+o.Email, movies), nil

	case "by-country":
		names, err := cat.SearchByCountry(ctx, o.Country)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Pictures shot in " + o.Country, Headers: []string{"name"}}
		for _, n := range names {
			t.Rows = append(t.Rows, []string{n})
		}
		return t, nil

	case "directors-by-zip":
		pairs, err := cat.DirectorsByZip(ctx, o.Zip)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Directors of series shot in " + o.Zip, Headers: []string{"director", "series"}}
		for _, p := range pairs {
			t.Rows = append(t.Rows, []string{p.Director, p.Series})
		}
		return t, nil

	case "awards-above":
		k, err := parseInt("k", o.K)
		if err != nil {
			return render.Table{}, err
		}
		tallies, err := cat.AwardsAboveThreshold(ctx, k)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{
			Title:   fmt.Sprintf("More than %d awards for one picture and year", k),
			Headers: []string{"person", "picture", "year", "awards"},
		}
		for _, a := range tallies {
			t.Rows = append(t.Rows, []string{a.Person, a.Picture, render.Int(a.Year), render.Int(a.Awards)})
		}
		return t, nil

	case "youngest-oldest":
		ext, err := cat.YoungestOldestAwardedActors(ctx)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Youngest and oldest awarded actors", Headers: []string{"set", "name", "age"}}
		for _, a := range ext.Youngest {
			t.Rows = append(t.Rows, []string{"youngest", a.Name, render.Int(a.Age)})
		}
		for _, a := range ext.Oldest {
			t.Rows = append(t.Rows, []string{"oldest", a.Name, render.Int(a.Age)})
		}
		return t, nil

	case "producers":
		boxMin, err := parseFloat("box-office-min", o.BoxOfficeMin)
		if err != nil {
			return render.Table{}, err
		}
		budgetMax, err := parseFloat("budget-max", o.BudgetMax)
		if err != nil {
			return render.Table{}, err
		}
		rows, err := cat.AmericanProducersByFinancials(ctx, boxMin, budgetMax)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "American producers", Headers: []string{"producer", "movie", "box office", "budget"}}
		for _, p := range rows {
			t.Rows = append(t.Rows, []string{p.Producer, p.Picture, render.Float(p.BoxOffice), render.Float(p.Budget)})
		}
		return t, nil

	case "multi-role":
		threshold, err := parseFloat("rating", o.Rating)
		if err != nil {
			return render.Table{}, err
		}
		rows, err := cat.MultiRolePeopleAboveRating(ctx, threshold)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{
			Title:   fmt.Sprintf("Multiple roles in pictures rated above %.1f", threshold),
			Headers: []string{"person", "picture", "roles"},
		}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{r.Person, r.Picture, render.Int(r.Roles)})
		}
		return t, nil

	case "top-thrillers-boston":
		rows, err := cat.TopThrillerMoviesExclusiveBoston(ctx)
		if err != nil {
			return render.Table{}, err
		}
		return ratedTable("Top thrillers shot exclusively in Boston", rows), nil

	case "liked-by-young":
		minLikes, err := parseInt("min-likes", o.MinLikes)
		if err != nil {
			return render.Table{}, err
		}
		maxAge, err := parseInt("max-age", o.MaxAge)
		if err != nil {
			return render.Table{}, err
		}
		rows, err := cat.MoviesLikedByYoungUsers(ctx, minLikes, maxAge)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{
			Title:   fmt.Sprintf("More than %d likes from users under %d", minLikes, maxAge),
			Headers: []string{"movie", "likes"},
		}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{r.Picture, render.Int(r.Likes)})
		}
		return t, nil

	case "both-studios":
		rows, err := cat.ActorsInBothStudios(ctx)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Actors in both Marvel and Warner Bros. pictures", Headers: []string{"actor", "pictures"}}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{r.Actor, strings.Join(r.Pictures, ", ")})
		}
		return t, nil

	case "above-comedy-average":
		rows, err := cat.MoviesAboveComedyAverage(ctx)
		if err != nil {
			return render.Table{}, err
		}
		return ratedTable("Pictures rated above the comedy average", rows), nil

	case "top5-by-people-roles":
		rows, err := cat.Top5MoviesByPeopleAndRoles(ctx)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Top 5 pictures by people and roles", Headers: []string{"movie", "people", "roles"}}
		for _, r := range rows {
			t.Rows = append(t.Rows, []string{r.Picture, render.Int(r.People), render.Int(r.Roles)})
		}
		return t, nil

	case "shared-birthday":
		pairs, err := cat.ActorsSharingBirthday(ctx)
		if err != nil {
			return render.Table{}, err
		}
		t := render.Table{Title: "Actors sharing a birthday", Headers: []string{"actor 1", "actor 2", "birthday"}}
		for _, p := range pairs {
			t.Rows = append(t.Rows, []string{p.First, p.Second, render.Date(p.Birthday)})
		}
		return t, nil
	}
	return render.Table{}, qerr.InvalidParameter("unknown operation "+strconv.Quote(o.Op), nil)
}

func movieTable(title string, movies []model.MovieSummary) render.Table {
	t := render.Table{Title: title, Headers: []string{"name", "rating", "production", "budget"}}
	for _, m := range movies {
		t.Rows = append(t.Rows, []string{m.Name, render.Float(m.Rating), m.Production, render.Float(m.Budget)})
	}
	return t
}

func ratedTable(title string, rows []model.RatedPicture) render.Table {
	t := render.Table{Title: title, Headers: []string{"name", "rating"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Name, render.Float(r.Rating)})
	}
	return t
}

func parseInt(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, qerr.InvalidParameter("flag -"+name+" must be an integer", err)
	}
	return v, nil
}

func parseFloat(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, qerr.InvalidParameter("flag -"+name+" must be a number", err)
	}
	return v, nil
}
