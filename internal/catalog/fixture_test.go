package catalog_test

import (
	"time"

	"github.com/sherrenjie/YourOwnIMDb/internal/dataset"
	"github.com/sherrenjie/YourOwnIMDb/internal/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func year(y int64) *int64 { return &y }

// fixtureSnapshot is a compact corpus exercising every operation's corner
// cases: duplicate role rows, NULL dobs and award years, duplicate same-city
// locations, an exclusivity violation, a comedy-average boundary, and a
// three-way birthday tie.
func fixtureSnapshot() dataset.Snapshot {
	return dataset.Snapshot{
		MotionPictures: []model.MotionPicture{
			{ID: 1, Name: "Iron Horizon", Rating: 7.5, Production: "Marvel", Budget: 200e6},
			{ID: 2, Name: "Gotham Nights", Rating: 8.2, Production: "Warner Bros.", Budget: 150e6},
			{ID: 3, Name: "Harbor Watch", Rating: 6.8, Production: "Nimbus", Budget: 30e6},
			{ID: 4, Name: "Silent Pier", Rating: 8.9, Production: "Nimbus", Budget: 20e6},
			{ID: 5, Name: "Cold Channel", Rating: 9.1, Production: "Nimbus", Budget: 25e6},
			{ID: 6, Name: "Back Bay", Rating: 7.9, Production: "Nimbus", Budget: 15e6},
			{ID: 7, Name: "Laugh Track", Rating: 6.0, Production: "Nimbus", Budget: 10e6},
			{ID: 8, Name: "Second Laugh", Rating: 8.0, Production: "Nimbus", Budget: 12e6},
			{ID: 9, Name: "Middle Road", Rating: 7.0, Production: "Nimbus", Budget: 18e6},
			{ID: 10, Name: "High Road", Rating: 7.1, Production: "Nimbus", Budget: 22e6},
		},
		Movies: []model.Movie{
			{PictureID: 1, BoxOffice: 900e6},
			{PictureID: 2, BoxOffice: 800e6},
			{PictureID: 4, BoxOffice: 95e6},
			{PictureID: 5, BoxOffice: 120e6},
			{PictureID: 6, BoxOffice: 40e6},
			{PictureID: 7, BoxOffice: 25e6},
			{PictureID: 8, BoxOffice: 60e6},
			{PictureID: 9, BoxOffice: 35e6},
			{PictureID: 10, BoxOffice: 45e6},
		},
		Series: []model.Series{
			{PictureID: 3},
		},
		People: []model.Person{
			{ID: 1, Name: "Alex Mercer", DOB: date(1980, time.March, 14), Nationality: "USA"},
			{ID: 2, Name: "Brianna Cole", DOB: date(1975, time.June, 2), Nationality: "USA"},
			{ID: 3, Name: "Carl Donner", DOB: date(1980, time.March, 14), Nationality: "UK"},
			{ID: 4, Name: "Dana Flores", Nationality: "USA"},
			{ID: 5, Name: "Erin Gates", DOB: date(1980, time.March, 14), Nationality: "USA"},
			{ID: 6, Name: "Felix Hart", DOB: date(1990, time.January, 20), Nationality: "France"},
			{ID: 7, Name: "Gina Idris", DOB: date(2000, time.July, 7), Nationality: "USA"},
			{ID: 8, Name: "Hector James", DOB: date(1940, time.May, 5), Nationality: "USA"},
			{ID: 9, Name: "Ivy Kane", DOB: date(2000, time.November, 11), Nationality: "USA"},
			{ID: 10, Name: "Jun Park", DOB: date(1968, time.September, 30), Nationality: "Korea"},
		},
		Roles: []model.Role{
			{PersonID: 1, PictureID: 1, Name: model.RoleActor},
			{PersonID: 1, PictureID: 1, Name: model.RoleDirector},
			{PersonID: 1, PictureID: 2, Name: model.RoleActor},
			{PersonID: 2, PictureID: 1, Name: model.RoleProducer},
			{PersonID: 2, PictureID: 4, Name: model.RoleActor},
			{PersonID: 2, PictureID: 4, Name: model.RoleActor}, // repeated row, counted twice
			{PersonID: 3, PictureID: 2, Name: model.RoleActor},
			{PersonID: 3, PictureID: 7, Name: model.RoleActor},
			{PersonID: 3, PictureID: 7, Name: "Writer"},
			{PersonID: 4, PictureID: 4, Name: model.RoleActor},
			{PersonID: 5, PictureID: 5, Name: model.RoleActor},
			{PersonID: 6, PictureID: 3, Name: model.RoleDirector},
			{PersonID: 6, PictureID: 3, Name: model.RoleProducer},
			{PersonID: 7, PictureID: 6, Name: model.RoleActor},
			{PersonID: 8, PictureID: 2, Name: model.RoleActor},
			{PersonID: 9, PictureID: 4, Name: model.RoleActor},
			{PersonID: 10, PictureID: 2, Name: model.RoleProducer},
		},
		Awards: []model.Award{
			{PersonID: 1, PictureID: 1, Year: year(2010), Name: "Best Actor"},
			{PersonID: 1, PictureID: 1, Year: year(2010), Name: "Best Stunt"},
			{PersonID: 1, PictureID: 1, Name: "Mystery Award"}, // NULL year, excluded from grouping
			{PersonID: 4, PictureID: 4, Year: year(2018), Name: "Best Supporting"},
			{PersonID: 7, PictureID: 6, Year: year(2020), Name: "Best Newcomer"},
			{PersonID: 8, PictureID: 2, Year: year(1995), Name: "Lifetime Achievement"},
			{PersonID: 9, PictureID: 4, Year: year(2020), Name: "Rising Star"},
		},
		Locations: []model.Location{
			{PictureID: 1, City: "Atlanta", Country: "USA", Zip: "30301"},
			{PictureID: 1, City: "Sydney", Country: "Australia", Zip: "2000"},
			{PictureID: 2, City: "London", Country: "UK", Zip: "SW1A"},
			{PictureID: 3, City: "Boston", Country: "USA", Zip: "02108"},
			{PictureID: 3, City: "Boston", Country: "USA", Zip: "02108"},
			{PictureID: 4, City: "Boston", Country: "USA", Zip: "02108"},
			{PictureID: 5, City: "Boston", Country: "USA", Zip: "02108"},
			{PictureID: 5, City: "New York", Country: "USA", Zip: "10001"},
			{PictureID: 6, City: "Boston", Country: "USA", Zip: "02108"},
			{PictureID: 6, City: "Boston", Country: "USA", Zip: "02110"},
		},
		Genres: []model.Genre{
			{PictureID: 4, Name: "thriller"},
			{PictureID: 5, Name: "thriller"},
			{PictureID: 6, Name: "thriller"},
			{PictureID: 7, Name: "comedy"},
			{PictureID: 8, Name: "comedy"},
			{PictureID: 1, Name: "action"},
		},
		Users: []model.User{
			{Email: "a@example.com", Age: 20},
			{Email: "b@example.com", Age: 25},
			{Email: "c@example.com", Age: 17},
			{Email: "d@example.com", Age: 30},
		},
		Likes: []model.Like{
			{UserEmail: "a@example.com", PictureID: 1},
			{UserEmail: "b@example.com", PictureID: 1},
			{UserEmail: "c@example.com", PictureID: 1},
			{UserEmail: "d@example.com", PictureID: 1},
			{UserEmail: "a@example.com", PictureID: 2},
			{UserEmail: "c@example.com", PictureID: 2},
			{UserEmail: "d@example.com", PictureID: 4},
		},
	}
}
