package entity

import (
	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/types"
)

func Users(s storage.Storage) Resource[types.User] {
	return Resource[types.User]{
		Singular: "User",
		Plural:   "users",
		Create:   s.CreateUser,
		Get:      s.GetUserByID,
		List:     s.GetUsers,
		Delete:   s.DeleteUserByID,
	}
}

func People(s storage.Storage) Resource[types.Person] {
	return Resource[types.Person]{
		Singular: "Person",
		Plural:   "people",
		Create:   s.CreatePerson,
		Get:      s.GetPersonByID,
		List:     s.GetPeople,
		Delete:   s.DeletePersonByID,
	}
}

func Planets(s storage.Storage) Resource[types.Planet] {
	return Resource[types.Planet]{
		Singular: "Planet",
		Plural:   "planets",
		Create:   s.CreatePlanet,
		Get:      s.GetPlanetByID,
		List:     s.GetPlanets,
		Delete:   s.DeletePlanetByID,
	}
}

func Vehicles(s storage.Storage) Resource[types.Vehicle] {
	return Resource[types.Vehicle]{
		Singular: "Vehicle",
		Plural:   "vehicles",
		Create:   s.CreateVehicle,
		Get:      s.GetVehicleByID,
		List:     s.GetVehicles,
		Delete:   s.DeleteVehicleByID,
	}
}
