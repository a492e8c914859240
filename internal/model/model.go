package model

import "time"

// Role names matched case-sensitively by the catalog.
const (
	RoleActor    = "Actor"
	RoleDirector = "Director"
	RoleProducer = "Producer"
)

// MotionPicture is the supertype row; every picture is exactly one of
// Movie or Series, joined 1:1 on ID.
type MotionPicture struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Production string  `json:"production"`
	Budget     float64 `json:"budget"`
}

// Movie is the theatrical specialization of MotionPicture.
type Movie struct {
	PictureID int64   `json:"mpid"`
	BoxOffice float64 `json:"boxoffice_collection"`
}

// Series marks a MotionPicture as a TV series.
type Series struct {
	PictureID int64 `json:"mpid"`
}

type Person struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DOB         *time.Time `json:"dob,omitempty"`
	Nationality string     `json:"nationality"`
}

// Role is one (person, picture, role name) fact. A person may hold several
// Role rows for the same picture; role-counting queries count rows.
type Role struct {
	PersonID  int64  `json:"pid"`
	PictureID int64  `json:"mpid"`
	Name      string `json:"role_name"`
}

// Award is one award row; a (person, picture, year) triple may have several,
// one per award name.
type Award struct {
	PersonID  int64  `json:"pid"`
	PictureID int64  `json:"mpid"`
	Year      *int64 `json:"award_year,omitempty"`
	Name      string `json:"award_name"`
}

type Location struct {
	PictureID int64  `json:"mpid"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
}

type Genre struct {
	PictureID int64  `json:"mpid"`
	Name      string `json:"genre_name"`
}

type User struct {
	Email string `json:"email"`
	Age   int64  `json:"age"`
}

type Like struct {
	UserEmail string `json:"uemail"`
	PictureID int64  `json:"mpid"`
}
