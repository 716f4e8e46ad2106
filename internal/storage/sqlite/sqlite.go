// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is the default backend; PostgreSQL is used only when
// DATABASE_URL is configured (see package gormdb).
//
// The favorites invariants live in the schema itself:
//
//   - a CHECK constraint keeps exactly one entity reference per row;
//   - partial unique indexes reject a second favorite for the same
//     (user, entity) pair, even when two requests race;
//   - ON DELETE CASCADE removes favorites together with the user or
//     entity they point at.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/starwars-api/internal/config"
	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/types"

	// Registers the "sqlite3" driver with database/sql and exposes
	// sqlite3.Error for constraint classification.
	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// schema is applied on every startup. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT    NOT NULL,
		last_name  TEXT    NOT NULL,
		email      TEXT    NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS people (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL,
		height     INTEGER NOT NULL,
		mass       INTEGER NOT NULL,
		hair_color TEXT    NOT NULL,
		skin_color TEXT    NOT NULL,
		eye_color  TEXT    NOT NULL,
		birth_year INTEGER NOT NULL,
		gender     TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS planets (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT    NOT NULL,
		diameter        INTEGER NOT NULL,
		rotation_period INTEGER NOT NULL,
		gravity         INTEGER NOT NULL,
		population      INTEGER NOT NULL,
		climate         TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		model          TEXT    NOT NULL,
		vehicle_class  TEXT    NOT NULL,
		manufacturer   TEXT    NOT NULL,
		length         INTEGER NOT NULL,
		cargo_capacity INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_favorites (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER NOT NULL REFERENCES users(id)    ON DELETE CASCADE,
		people_id   INTEGER          REFERENCES people(id)   ON DELETE CASCADE,
		planets_id  INTEGER          REFERENCES planets(id)  ON DELETE CASCADE,
		vehicles_id INTEGER          REFERENCES vehicles(id) ON DELETE CASCADE,
		CHECK ((people_id IS NOT NULL) + (planets_id IS NOT NULL) + (vehicles_id IS NOT NULL) = 1)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_favorites_people
		ON user_favorites (user_id, people_id) WHERE people_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_favorites_planets
		ON user_favorites (user_id, planets_id) WHERE planets_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_favorites_vehicles
		ON user_favorites (user_id, vehicles_id) WHERE vehicles_id IS NOT NULL`,
}

// New opens the SQLite database at cfg.StoragePath.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open opens (creating if needed) the database file at path, applies the
// schema and returns a ready-to-use *SQLite.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.Open: create dir: %w", err)
		}
	}

	// Foreign keys are off by default in SQLite and the pragma is per
	// connection, so it goes into the DSN where every new connection
	// picks it up.
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// SQLite allows a single writer; one connection keeps writers from
	// failing with SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite.Open: apply schema: %w", err)
		}
	}

	return &SQLite{Db: db}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.Db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// classify maps driver errors onto the storage sentinels so callers
// never have to import the driver.
func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		case sqlite3.ErrConstraintForeignKey:
			// The referenced user or entity is gone.
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// deleteByID removes one row from table and reports ErrNotFound when
// nothing matched. Callers pass constant table names only.
func (s *SQLite) deleteByID(ctx context.Context, op, table string, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return classify(op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return classify(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: no row with id %d: %w", op, id, storage.ErrNotFound)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Users
// ─────────────────────────────────────────────────────────────────────────────

// CreateUser inserts a user. A duplicate email surfaces as
// storage.ErrConflict through the UNIQUE constraint.
func (s *SQLite) CreateUser(ctx context.Context, user types.User) (types.User, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email) VALUES (?, ?, ?)",
		user.FirstName, user.LastName, user.Email,
	)
	if err != nil {
		return types.User{}, classify("CreateUser", err)
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return types.User{}, classify("CreateUser", err)
	}
	return user, nil
}

func (s *SQLite) GetUserByID(ctx context.Context, id int64) (types.User, error) {
	var user types.User
	err := s.Db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, email FROM users WHERE id = ? LIMIT 1", id,
	).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email)
	if err != nil {
		return types.User{}, classify(fmt.Sprintf("GetUserByID(%d)", id), err)
	}
	return user, nil
}

func (s *SQLite) GetUsers(ctx context.Context) ([]types.User, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, first_name, last_name, email FROM users ORDER BY id")
	if err != nil {
		return nil, classify("GetUsers", err)
	}
	defer rows.Close()

	// Returning [] instead of null in JSON is better API behaviour.
	users := make([]types.User, 0)
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email); err != nil {
			return nil, classify("GetUsers", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("GetUsers", err)
	}
	return users, nil
}

func (s *SQLite) DeleteUserByID(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "DeleteUserByID", "users", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// People
// ─────────────────────────────────────────────────────────────────────────────

const personColumns = "id, name, height, mass, hair_color, skin_color, eye_color, birth_year, gender"

func scanPerson(row interface{ Scan(...any) error }) (types.Person, error) {
	var p types.Person
	err := row.Scan(&p.ID, &p.Name, &p.Height, &p.Mass,
		&p.HairColor, &p.SkinColor, &p.EyeColor, &p.BirthYear, &p.Gender)
	return p, err
}

func (s *SQLite) CreatePerson(ctx context.Context, p types.Person) (types.Person, error) {
	result, err := s.Db.ExecContext(ctx,
		`INSERT INTO people (name, height, mass, hair_color, skin_color, eye_color, birth_year, gender)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Height, p.Mass, p.HairColor, p.SkinColor, p.EyeColor, p.BirthYear, p.Gender,
	)
	if err != nil {
		return types.Person{}, classify("CreatePerson", err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return types.Person{}, classify("CreatePerson", err)
	}
	return p, nil
}

func (s *SQLite) GetPersonByID(ctx context.Context, id int64) (types.Person, error) {
	p, err := scanPerson(s.Db.QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM people WHERE id = ? LIMIT 1", id))
	if err != nil {
		return types.Person{}, classify(fmt.Sprintf("GetPersonByID(%d)", id), err)
	}
	return p, nil
}

func (s *SQLite) GetPeople(ctx context.Context) ([]types.Person, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT "+personColumns+" FROM people ORDER BY id")
	if err != nil {
		return nil, classify("GetPeople", err)
	}
	defer rows.Close()

	people := make([]types.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, classify("GetPeople", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("GetPeople", err)
	}
	return people, nil
}

func (s *SQLite) DeletePersonByID(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "DeletePersonByID", "people", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Planets
// ─────────────────────────────────────────────────────────────────────────────

const planetColumns = "id, name, diameter, rotation_period, gravity, population, climate"

func scanPlanet(row interface{ Scan(...any) error }) (types.Planet, error) {
	var p types.Planet
	err := row.Scan(&p.ID, &p.Name, &p.Diameter, &p.RotationPeriod,
		&p.Gravity, &p.Population, &p.Climate)
	return p, err
}

func (s *SQLite) CreatePlanet(ctx context.Context, p types.Planet) (types.Planet, error) {
	result, err := s.Db.ExecContext(ctx,
		`INSERT INTO planets (name, diameter, rotation_period, gravity, population, climate)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Diameter, p.RotationPeriod, p.Gravity, p.Population, p.Climate,
	)
	if err != nil {
		return types.Planet{}, classify("CreatePlanet", err)
	}

	p.ID, err = result.LastInsertId()
	if err != nil {
		return types.Planet{}, classify("CreatePlanet", err)
	}
	return p, nil
}

func (s *SQLite) GetPlanetByID(ctx context.Context, id int64) (types.Planet, error) {
	p, err := scanPlanet(s.Db.QueryRowContext(ctx,
		"SELECT "+planetColumns+" FROM planets WHERE id = ? LIMIT 1", id))
	if err != nil {
		return types.Planet{}, classify(fmt.Sprintf("GetPlanetByID(%d)", id), err)
	}
	return p, nil
}

func (s *SQLite) GetPlanets(ctx context.Context) ([]types.Planet, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT "+planetColumns+" FROM planets ORDER BY id")
	if err != nil {
		return nil, classify("GetPlanets", err)
	}
	defer rows.Close()

	planets := make([]types.Planet, 0)
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, classify("GetPlanets", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("GetPlanets", err)
	}
	return planets, nil
}

func (s *SQLite) DeletePlanetByID(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "DeletePlanetByID", "planets", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Vehicles
// ─────────────────────────────────────────────────────────────────────────────

const vehicleColumns = "id, model, vehicle_class, manufacturer, length, cargo_capacity"

func scanVehicle(row interface{ Scan(...any) error }) (types.Vehicle, error) {
	var v types.Vehicle
	err := row.Scan(&v.ID, &v.Model, &v.VehicleClass, &v.Manufacturer, &v.Length, &v.CargoCapacity)
	return v, err
}

func (s *SQLite) CreateVehicle(ctx context.Context, v types.Vehicle) (types.Vehicle, error) {
	result, err := s.Db.ExecContext(ctx,
		`INSERT INTO vehicles (model, vehicle_class, manufacturer, length, cargo_capacity)
		 VALUES (?, ?, ?, ?, ?)`,
		v.Model, v.VehicleClass, v.Manufacturer, v.Length, v.CargoCapacity,
	)
	if err != nil {
		return types.Vehicle{}, classify("CreateVehicle", err)
	}

	v.ID, err = result.LastInsertId()
	if err != nil {
		return types.Vehicle{}, classify("CreateVehicle", err)
	}
	return v, nil
}

func (s *SQLite) GetVehicleByID(ctx context.Context, id int64) (types.Vehicle, error) {
	v, err := scanVehicle(s.Db.QueryRowContext(ctx,
		"SELECT "+vehicleColumns+" FROM vehicles WHERE id = ? LIMIT 1", id))
	if err != nil {
		return types.Vehicle{}, classify(fmt.Sprintf("GetVehicleByID(%d)", id), err)
	}
	return v, nil
}

func (s *SQLite) GetVehicles(ctx context.Context) ([]types.Vehicle, error) {
	rows, err := s.Db.QueryContext(ctx, "SELECT "+vehicleColumns+" FROM vehicles ORDER BY id")
	if err != nil {
		return nil, classify("GetVehicles", err)
	}
	defer rows.Close()

	vehicles := make([]types.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, classify("GetVehicles", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("GetVehicles", err)
	}
	return vehicles, nil
}

func (s *SQLite) DeleteVehicleByID(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "DeleteVehicleByID", "vehicles", id)
}

// ─────────────────────────────────────────────────────────────────────────────
// Favorites
//
// Nullable references are scanned through sql.NullInt64 and exposed as
// *int64 so that unset references encode to JSON null.
// ─────────────────────────────────────────────────────────────────────────────

const favoriteColumns = "id, user_id, people_id, planets_id, vehicles_id"

func scanFavorite(row interface{ Scan(...any) error }) (types.Favorite, error) {
	var (
		fav                       types.Favorite
		people, planets, vehicles sql.NullInt64
	)
	if err := row.Scan(&fav.ID, &fav.UserID, &people, &planets, &vehicles); err != nil {
		return types.Favorite{}, err
	}
	fav.PeopleID = nullToPtr(people)
	fav.PlanetsID = nullToPtr(planets)
	fav.VehiclesID = nullToPtr(vehicles)
	return fav, nil
}

func nullToPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func ptrToNull(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func (s *SQLite) CreateFavorite(ctx context.Context, fav types.Favorite) (types.Favorite, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO user_favorites (user_id, people_id, planets_id, vehicles_id) VALUES (?, ?, ?, ?)",
		fav.UserID, ptrToNull(fav.PeopleID), ptrToNull(fav.PlanetsID), ptrToNull(fav.VehiclesID),
	)
	if err != nil {
		return types.Favorite{}, classify("CreateFavorite", err)
	}

	fav.ID, err = result.LastInsertId()
	if err != nil {
		return types.Favorite{}, classify("CreateFavorite", err)
	}
	return fav, nil
}

func (s *SQLite) FindFavorite(ctx context.Context, userID int64, kind types.Kind, entityID int64) (types.Favorite, error) {
	// kind.Column() only yields one of three fixed column names; an
	// unknown kind is rejected before it reaches SQL.
	if _, err := types.ParseKind(string(kind)); err != nil {
		return types.Favorite{}, fmt.Errorf("FindFavorite: %w", err)
	}

	fav, err := scanFavorite(s.Db.QueryRowContext(ctx,
		"SELECT "+favoriteColumns+" FROM user_favorites WHERE user_id = ? AND "+kind.Column()+" = ? LIMIT 1",
		userID, entityID,
	))
	if err != nil {
		return types.Favorite{}, classify("FindFavorite", err)
	}
	return fav, nil
}

func (s *SQLite) GetFavoritesByUser(ctx context.Context, userID int64) ([]types.Favorite, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT "+favoriteColumns+" FROM user_favorites WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, classify("GetFavoritesByUser", err)
	}
	defer rows.Close()

	favs := make([]types.Favorite, 0)
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, classify("GetFavoritesByUser", err)
		}
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("GetFavoritesByUser", err)
	}
	return favs, nil
}

func (s *SQLite) DeleteFavoriteByID(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "DeleteFavoriteByID", "user_favorites", id)
}

// compile-time check that *SQLite satisfies the interface.
var _ storage.Storage = (*SQLite)(nil)
