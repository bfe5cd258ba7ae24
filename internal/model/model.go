// Package model holds the LightBnB records read from and written to
// PostgreSQL. Field tags follow the column names.
package model

import "time"

// User is a row of the users table. Password holds a bcrypt hash and is
// never serialized.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}

// Property is a row of the properties table.
//
// CostPerNight is stored in minor currency units (cents).
type Property struct {
	ID                int64  `json:"id" db:"id"`
	OwnerID           int64  `json:"owner_id" db:"owner_id"`
	Title             string `json:"title" db:"title"`
	Description       string `json:"description" db:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" db:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url" db:"cover_photo_url"`
	CostPerNight      int64  `json:"cost_per_night" db:"cost_per_night"`
	ParkingSpaces     int32  `json:"parking_spaces" db:"parking_spaces"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" db:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" db:"number_of_bedrooms"`
	Country           string `json:"country" db:"country"`
	Street            string `json:"street" db:"street"`
	City              string `json:"city" db:"city"`
	Province          string `json:"province" db:"province"`
	PostCode          string `json:"post_code" db:"post_code"`
	Active            bool   `json:"active" db:"active"`
}

// PropertyWithRating is a property plus the average of its review ratings.
type PropertyWithRating struct {
	Property
	AverageRating float64 `json:"average_rating" db:"average_rating"`
}

// Reservation is a row of the reservations table.
type Reservation struct {
	ID         int64     `json:"id" db:"id"`
	StartDate  time.Time `json:"start_date" db:"start_date"`
	EndDate    time.Time `json:"end_date" db:"end_date"`
	PropertyID int64     `json:"property_id" db:"property_id"`
	GuestID    int64     `json:"guest_id" db:"guest_id"`
}

// GuestReservation is what a guest sees in their trip list: the booking,
// the property it is for and that property's average rating.
type GuestReservation struct {
	Reservation   Reservation `json:"reservation"`
	Property      Property    `json:"property"`
	AverageRating float64     `json:"average_rating"`
}

// NewUser carries the fields needed to insert a user. Password must
// already be hashed.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// NewProperty carries the caller-supplied fields of a listing.
//
// CostPerNight is in major currency units (dollars); the repository
// stores it multiplied by 100.
type NewProperty struct {
	OwnerID           int64
	Title             string
	Description       string
	ThumbnailPhotoURL string
	CoverPhotoURL     string
	CostPerNight      float64
	ParkingSpaces     int32
	NumberOfBathrooms int32
	NumberOfBedrooms  int32
	Country           string
	Street            string
	City              string
	Province          string
	PostCode          string
}

// PropertyFilter narrows a property search. Nil or empty fields impose
// no constraint. Prices are in major currency units.
type PropertyFilter struct {
	City                 string
	OwnerID              *int64
	MinimumPricePerNight *float64
	MaximumPricePerNight *float64
	MinimumRating        *float64
}
