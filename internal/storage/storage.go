// Package storage defines the Storage interface, a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers and the favorites manager should not know or care which
// database they are talking to. Two backends exist today:
//
//   - sqlite: database/sql over go-sqlite3, the default.
//   - gormdb: GORM over PostgreSQL, used when DATABASE_URL is set.
//
// Both return the sentinel errors below so callers can classify failures
// with errors.Is regardless of the driver underneath.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/starwars-api/internal/types"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a write violated a uniqueness constraint
	// (duplicate user email, duplicate favorite).
	ErrConflict = errors.New("record already exists")
)

// Storage is the database contract.
type Storage interface {
	CreateUser(ctx context.Context, user types.User) (types.User, error)
	GetUserByID(ctx context.Context, id int64) (types.User, error)
	GetUsers(ctx context.Context) ([]types.User, error)
	// DeleteUserByID removes the user together with all of their favorites.
	DeleteUserByID(ctx context.Context, id int64) error

	CreatePerson(ctx context.Context, person types.Person) (types.Person, error)
	GetPersonByID(ctx context.Context, id int64) (types.Person, error)
	GetPeople(ctx context.Context) ([]types.Person, error)
	DeletePersonByID(ctx context.Context, id int64) error

	CreatePlanet(ctx context.Context, planet types.Planet) (types.Planet, error)
	GetPlanetByID(ctx context.Context, id int64) (types.Planet, error)
	GetPlanets(ctx context.Context) ([]types.Planet, error)
	DeletePlanetByID(ctx context.Context, id int64) error

	CreateVehicle(ctx context.Context, vehicle types.Vehicle) (types.Vehicle, error)
	GetVehicleByID(ctx context.Context, id int64) (types.Vehicle, error)
	GetVehicles(ctx context.Context) ([]types.Vehicle, error)
	DeleteVehicleByID(ctx context.Context, id int64) error

	// CreateFavorite inserts a favorite row. Returns ErrConflict if the
	// user already has the same entity as a favorite.
	CreateFavorite(ctx context.Context, fav types.Favorite) (types.Favorite, error)

	// FindFavorite looks up the favorite linking userID to the entity of
	// the given kind. Returns ErrNotFound if there is none.
	FindFavorite(ctx context.Context, userID int64, kind types.Kind, entityID int64) (types.Favorite, error)

	// GetFavoritesByUser returns every favorite of a user, ordered by id.
	// Returns an empty slice (not nil) if there are none.
	GetFavoritesByUser(ctx context.Context, userID int64) ([]types.Favorite, error)

	DeleteFavoriteByID(ctx context.Context, id int64) error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
