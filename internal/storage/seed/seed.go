// Package seed fills an empty database with a small sample catalogue so
// that a fresh deployment has something to favorite.
package seed

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/types"
)

// Summary counts the rows inserted by Run, per collection.
type Summary struct {
	Users    int `json:"users"`
	People   int `json:"people"`
	Planets  int `json:"planets"`
	Vehicles int `json:"vehicles"`
}

var (
	DemoUser = types.User{FirstName: "Luke", LastName: "Skywalker", Email: "luke@rebels.org"}

	People = []types.Person{
		{Name: "Luke Skywalker", Height: 172, Mass: 77, HairColor: "blond", SkinColor: "fair", EyeColor: "blue", BirthYear: 19, Gender: "male"},
		{Name: "Leia Organa", Height: 150, Mass: 49, HairColor: "brown", SkinColor: "light", EyeColor: "brown", BirthYear: 19, Gender: "female"},
		{Name: "Darth Vader", Height: 202, Mass: 136, HairColor: "none", SkinColor: "white", EyeColor: "yellow", BirthYear: 41, Gender: "male"},
		{Name: "Obi-Wan Kenobi", Height: 182, Mass: 77, HairColor: "auburn, white", SkinColor: "fair", EyeColor: "blue-gray", BirthYear: 57, Gender: "male"},
	}

	Planets = []types.Planet{
		{Name: "Tatooine", Diameter: 10465, RotationPeriod: 23, Gravity: 1, Population: 200000, Climate: "arid"},
		{Name: "Alderaan", Diameter: 12500, RotationPeriod: 24, Gravity: 1, Population: 2000000000, Climate: "temperate"},
		{Name: "Hoth", Diameter: 7200, RotationPeriod: 23, Gravity: 1, Population: 0, Climate: "frozen"},
	}

	Vehicles = []types.Vehicle{
		{Model: "Digger Crawler", VehicleClass: "wheeled", Manufacturer: "Corellia Mining Corporation", Length: 36, CargoCapacity: 50000},
		{Model: "T-16 skyhopper", VehicleClass: "repulsorcraft", Manufacturer: "Incom Corporation", Length: 10, CargoCapacity: 50},
		{Model: "X-34 landspeeder", VehicleClass: "repulsorcraft", Manufacturer: "SoroSuub Corporation", Length: 3, CargoCapacity: 5},
	}
)

// Run inserts the sample rows. A collection that already has rows is
// left alone, so Run is safe to call on every deploy.
func Run(ctx context.Context, store storage.Storage) (Summary, error) {
	var sum Summary
	var err error

	if sum.Users, err = seedAll(ctx, store.GetUsers, store.CreateUser, []types.User{DemoUser}); err != nil {
		return sum, fmt.Errorf("seed users: %w", err)
	}
	if sum.People, err = seedAll(ctx, store.GetPeople, store.CreatePerson, People); err != nil {
		return sum, fmt.Errorf("seed people: %w", err)
	}
	if sum.Planets, err = seedAll(ctx, store.GetPlanets, store.CreatePlanet, Planets); err != nil {
		return sum, fmt.Errorf("seed planets: %w", err)
	}
	if sum.Vehicles, err = seedAll(ctx, store.GetVehicles, store.CreateVehicle, Vehicles); err != nil {
		return sum, fmt.Errorf("seed vehicles: %w", err)
	}
	return sum, nil
}

func seedAll[T any](
	ctx context.Context,
	list func(context.Context) ([]T, error),
	create func(context.Context, T) (T, error),
	rows []T,
) (int, error) {
	existing, err := list(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, row := range rows {
		if _, err := create(ctx, row); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}
