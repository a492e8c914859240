package model

import "time"

// Result records returned by the query catalog. One type per operation so
// presenters bind fields by name instead of positional tuples.

// MovieSummary is the display row for picture searches.
type MovieSummary struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Production string  `json:"production"`
	Budget     float64 `json:"budget"`
}

// DirectorSeries pairs a director with a series they directed.
type DirectorSeries struct {
	Director string `json:"director_name"`
	Series   string `json:"series_name"`
}

// AwardTally counts award rows for one (person, picture, year) group.
type AwardTally struct {
	Person  string `json:"person_name"`
	Picture string `json:"motion_picture_name"`
	Year    int64  `json:"award_year"`
	Awards  int64  `json:"award_count"`
}

// ActorAge is an actor's age at award time.
type ActorAge struct {
	Name string `json:"name"`
	Age  int64  `json:"age"`
}

// AgeExtremes holds the full tie sets at the minimum and maximum age.
// Both sets are empty when no awarded actor has a usable age.
type AgeExtremes struct {
	Youngest []ActorAge `json:"youngest"`
	Oldest   []ActorAge `json:"oldest"`
}

type ProducerFinancials struct {
	Producer  string  `json:"producer_name"`
	Picture   string  `json:"movie_name"`
	BoxOffice float64 `json:"boxoffice_collection"`
	Budget    float64 `json:"budget"`
}

// RoleTally counts role rows one person holds in one picture.
type RoleTally struct {
	Person  string `json:"person_name"`
	Picture string `json:"motion_picture_name"`
	Roles   int64  `json:"role_count"`
}

type RatedPicture struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

type LikeTally struct {
	Picture string `json:"movie_name"`
	Likes   int64  `json:"like_count"`
}

// StudioActor lists the distinct pictures an actor made across both studios.
type StudioActor struct {
	Actor    string   `json:"actor_name"`
	Pictures []string `json:"motion_pictures"`
}

type CastSize struct {
	Picture string `json:"movie_name"`
	People  int64  `json:"people_count"`
	Roles   int64  `json:"role_count"`
}

// BirthdayPair is one unordered pair of actors sharing a date of birth,
// emitted exactly once.
type BirthdayPair struct {
	First    string    `json:"actor1"`
	Second   string    `json:"actor2"`
	Birthday time.Time `json:"common_birthday"`
}
