// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and the favorites manager can all import types
// without depending on each other.
package types

import (
	"errors"
	"fmt"
)

// User is a registered account that can collect favorites.
//
// Struct tags serve two purposes:
//
//  1. json:"..." controls how the field appears when encoded to JSON.
//     The camelCase names match what existing API clients already send.
//
//  2. validate:"..." holds rules checked by the go-playground/validator
//     package when a user is created through POST /users.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" validate:"required,max=80"`
	LastName  string `json:"lastName"  validate:"required,max=80"`
	Email     string `json:"email"     validate:"required,email,max=80"`
}

// Person is a character of the catalogue.
type Person struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"       validate:"required,max=120"`
	Height    int    `json:"height"     validate:"gte=0"`
	Mass      int    `json:"mass"       validate:"gte=0"`
	HairColor string `json:"hair_color" validate:"required,max=120"`
	SkinColor string `json:"skin_color" validate:"required,max=120"`
	EyeColor  string `json:"eye_color"  validate:"required,max=120"`
	BirthYear int    `json:"birth_year"`
	Gender    string `json:"gender"     validate:"required,max=80"`
}

// Planet is a planet of the catalogue.
type Planet struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"            validate:"required,max=120"`
	Diameter       int    `json:"diameter"        validate:"gte=0"`
	RotationPeriod int    `json:"rotation_period" validate:"gte=0"`
	Gravity        int    `json:"gravity"         validate:"gte=0"`
	Population     int64  `json:"population"      validate:"gte=0"`
	Climate        string `json:"climate"         validate:"required,max=80"`
}

// Vehicle is a vehicle of the catalogue.
type Vehicle struct {
	ID            int64  `json:"id"`
	Model         string `json:"model"          validate:"required,max=120"`
	VehicleClass  string `json:"vehicle_class"  validate:"required,max=120"`
	Manufacturer  string `json:"manufacturer"   validate:"required,max=120"`
	Length        int    `json:"length"         validate:"gte=0"`
	CargoCapacity int64  `json:"cargo_capacity" validate:"gte=0"`
}

// Favorite links a user to exactly one person, planet or vehicle.
// The two unused references stay nil and encode to JSON null.
type Favorite struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	PeopleID   *int64 `json:"people_id"`
	PlanetsID  *int64 `json:"planets_id"`
	VehiclesID *int64 `json:"vehicles_id"`
}

// Kind names the catalogue a favorite points into. The string value is
// the path segment used by the /fav/{kind}/{id} routes.
type Kind string

const (
	KindPeople   Kind = "people"
	KindPlanets  Kind = "planets"
	KindVehicles Kind = "vehicles"
)

// Kinds lists every valid Kind in a stable order.
var Kinds = []Kind{KindPeople, KindPlanets, KindVehicles}

// ErrUnknownKind is returned by ParseKind for anything outside Kinds.
var ErrUnknownKind = errors.New("unknown favorite kind")

// ParseKind converts a path segment into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Column returns the favorites-table column holding references of this kind.
func (k Kind) Column() string {
	return string(k) + "_id"
}

// NewFavorite builds a favorite row with only the reference for kind set.
func NewFavorite(userID int64, kind Kind, entityID int64) Favorite {
	fav := Favorite{UserID: userID}
	id := entityID
	switch kind {
	case KindPeople:
		fav.PeopleID = &id
	case KindPlanets:
		fav.PlanetsID = &id
	case KindVehicles:
		fav.VehiclesID = &id
	}
	return fav
}

// Target reports which kind and entity a favorite points at.
// ok is false when the row has no reference set.
func (f Favorite) Target() (kind Kind, entityID int64, ok bool) {
	switch {
	case f.PeopleID != nil:
		return KindPeople, *f.PeopleID, true
	case f.PlanetsID != nil:
		return KindPlanets, *f.PlanetsID, true
	case f.VehiclesID != nil:
		return KindVehicles, *f.VehiclesID, true
	}
	return "", 0, false
}

// FavoriteRequest is the JSON body of POST and DELETE /fav/{kind}/{id}.
type FavoriteRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
