package gormdb

import "github.com/aanand-mishra/starwars-api/internal/types"

// Row types carry the gorm tags so that package types stays free of
// ORM concerns. Each one maps 1:1 onto a table of the SQLite backend.

type userRow struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"size:80;not null"`
	LastName  string `gorm:"size:80;not null"`
	Email     string `gorm:"size:80;not null;uniqueIndex"`
}

func (userRow) TableName() string { return "users" }

type personRow struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:120;not null"`
	Height    int    `gorm:"not null"`
	Mass      int    `gorm:"not null"`
	HairColor string `gorm:"size:120;not null"`
	SkinColor string `gorm:"size:120;not null"`
	EyeColor  string `gorm:"size:120;not null"`
	BirthYear int    `gorm:"not null"`
	Gender    string `gorm:"size:80;not null"`
}

func (personRow) TableName() string { return "people" }

type planetRow struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"size:120;not null"`
	Diameter       int    `gorm:"not null"`
	RotationPeriod int    `gorm:"not null"`
	Gravity        int    `gorm:"not null"`
	Population     int64  `gorm:"not null"`
	Climate        string `gorm:"size:80;not null"`
}

func (planetRow) TableName() string { return "planets" }

type vehicleRow struct {
	ID            int64  `gorm:"primaryKey"`
	Model         string `gorm:"size:120;not null"`
	VehicleClass  string `gorm:"size:120;not null"`
	Manufacturer  string `gorm:"size:120;not null"`
	Length        int    `gorm:"not null"`
	CargoCapacity int64  `gorm:"not null"`
}

func (vehicleRow) TableName() string { return "vehicles" }

// favoriteRow references exactly one entity. The belongs-to relations
// exist only to give the table its foreign keys; they are never loaded.
type favoriteRow struct {
	ID         int64 `gorm:"primaryKey"`
	UserID     int64 `gorm:"not null;index"`
	PeopleID   *int64
	PlanetsID  *int64
	VehiclesID *int64 `gorm:"check:chk_user_favorites_one_ref,(CASE WHEN people_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN planets_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN vehicles_id IS NULL THEN 0 ELSE 1 END) = 1"`

	User    *userRow    `gorm:"constraint:OnDelete:CASCADE"`
	Person  *personRow  `gorm:"foreignKey:PeopleID;constraint:OnDelete:CASCADE"`
	Planet  *planetRow  `gorm:"foreignKey:PlanetsID;constraint:OnDelete:CASCADE"`
	Vehicle *vehicleRow `gorm:"foreignKey:VehiclesID;constraint:OnDelete:CASCADE"`
}

func (favoriteRow) TableName() string { return "user_favorites" }

// partialIndexes enforce one favorite per (user, entity). gorm's index
// tags cannot express the WHERE clause portably, so they are created
// with raw DDL understood by both PostgreSQL and SQLite.
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_favorites_people
		ON user_favorites (user_id, people_id) WHERE people_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_favorites_planets
		ON user_favorites (user_id, planets_id) WHERE planets_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_user_favorites_vehicles
		ON user_favorites (user_id, vehicles_id) WHERE vehicles_id IS NOT NULL`,
}

func userFromRow(r userRow) types.User {
	return types.User{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email}
}

func userToRow(u types.User) userRow {
	return userRow{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func personFromRow(r personRow) types.Person {
	return types.Person{
		ID: r.ID, Name: r.Name, Height: r.Height, Mass: r.Mass,
		HairColor: r.HairColor, SkinColor: r.SkinColor, EyeColor: r.EyeColor,
		BirthYear: r.BirthYear, Gender: r.Gender,
	}
}

func personToRow(p types.Person) personRow {
	return personRow{
		ID: p.ID, Name: p.Name, Height: p.Height, Mass: p.Mass,
		HairColor: p.HairColor, SkinColor: p.SkinColor, EyeColor: p.EyeColor,
		BirthYear: p.BirthYear, Gender: p.Gender,
	}
}

func planetFromRow(r planetRow) types.Planet {
	return types.Planet{
		ID: r.ID, Name: r.Name, Diameter: r.Diameter, RotationPeriod: r.RotationPeriod,
		Gravity: r.Gravity, Population: r.Population, Climate: r.Climate,
	}
}

func planetToRow(p types.Planet) planetRow {
	return planetRow{
		ID: p.ID, Name: p.Name, Diameter: p.Diameter, RotationPeriod: p.RotationPeriod,
		Gravity: p.Gravity, Population: p.Population, Climate: p.Climate,
	}
}

func vehicleFromRow(r vehicleRow) types.Vehicle {
	return types.Vehicle{
		ID: r.ID, Model: r.Model, VehicleClass: r.VehicleClass, Manufacturer: r.Manufacturer,
		Length: r.Length, CargoCapacity: r.CargoCapacity,
	}
}

func vehicleToRow(v types.Vehicle) vehicleRow {
	return vehicleRow{
		ID: v.ID, Model: v.Model, VehicleClass: v.VehicleClass, Manufacturer: v.Manufacturer,
		Length: v.Length, CargoCapacity: v.CargoCapacity,
	}
}

func favoriteFromRow(r favoriteRow) types.Favorite {
	return types.Favorite{
		ID: r.ID, UserID: r.UserID,
		PeopleID: r.PeopleID, PlanetsID: r.PlanetsID, VehiclesID: r.VehiclesID,
	}
}

func favoriteToRow(f types.Favorite) favoriteRow {
	return favoriteRow{
		ID: f.ID, UserID: f.UserID,
		PeopleID: f.PeopleID, PlanetsID: f.PlanetsID, VehiclesID: f.VehiclesID,
	}
}
