package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	assert.NoError(t, second.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	users, err := s.GetUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	luke, err := s.CreateUser(ctx, types.User{FirstName: "Luke", LastName: "Skywalker", Email: "luke@rebels.org"})
	require.NoError(t, err)
	assert.NotZero(t, luke.ID)

	got, err := s.GetUserByID(ctx, luke.ID)
	require.NoError(t, err)
	assert.Equal(t, luke, got)

	_, err = s.CreateUser(ctx, types.User{FirstName: "Other", LastName: "Luke", Email: "luke@rebels.org"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = s.GetUserByID(ctx, luke.ID+100)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.DeleteUserByID(ctx, luke.ID))
	assert.ErrorIs(t, s.DeleteUserByID(ctx, luke.ID), storage.ErrNotFound)
}

func TestCatalogueRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	person, err := s.CreatePerson(ctx, types.Person{
		Name: "Leia Organa", Height: 150, Mass: 49, HairColor: "brown",
		SkinColor: "light", EyeColor: "brown", BirthYear: 19, Gender: "female",
	})
	require.NoError(t, err)
	gotPerson, err := s.GetPersonByID(ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, person, gotPerson)

	planet, err := s.CreatePlanet(ctx, types.Planet{
		Name: "Alderaan", Diameter: 12500, RotationPeriod: 24, Gravity: 1,
		Population: 2000000000, Climate: "temperate",
	})
	require.NoError(t, err)
	gotPlanet, err := s.GetPlanetByID(ctx, planet.ID)
	require.NoError(t, err)
	assert.Equal(t, planet, gotPlanet)

	vehicle, err := s.CreateVehicle(ctx, types.Vehicle{
		Model: "T-16 skyhopper", VehicleClass: "repulsorcraft", Manufacturer: "Incom Corporation",
		Length: 10, CargoCapacity: 50,
	})
	require.NoError(t, err)
	gotVehicle, err := s.GetVehicleByID(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, vehicle, gotVehicle)

	people, err := s.GetPeople(ctx)
	require.NoError(t, err)
	assert.Len(t, people, 1)
	planets, err := s.GetPlanets(ctx)
	require.NoError(t, err)
	assert.Len(t, planets, 1)
	vehicles, err := s.GetVehicles(ctx)
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)

	require.NoError(t, s.DeletePersonByID(ctx, person.ID))
	require.NoError(t, s.DeletePlanetByID(ctx, planet.ID))
	require.NoError(t, s.DeleteVehicleByID(ctx, vehicle.ID))

	_, err = s.GetPersonByID(ctx, person.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetPlanetByID(ctx, planet.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetVehicleByID(ctx, vehicle.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFavoritesConstraints(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	user, err := s.CreateUser(ctx, types.User{FirstName: "Han", LastName: "Solo", Email: "han@falcon.space"})
	require.NoError(t, err)
	planet, err := s.CreatePlanet(ctx, types.Planet{Name: "Corellia", Climate: "temperate"})
	require.NoError(t, err)

	fav, err := s.CreateFavorite(ctx, types.NewFavorite(user.ID, types.KindPlanets, planet.ID))
	require.NoError(t, err)
	assert.NotZero(t, fav.ID)

	found, err := s.FindFavorite(ctx, user.ID, types.KindPlanets, planet.ID)
	require.NoError(t, err)
	assert.Equal(t, fav, found)
	assert.Nil(t, found.PeopleID)
	assert.Nil(t, found.VehiclesID)

	_, err = s.FindFavorite(ctx, user.ID, types.KindPeople, planet.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.FindFavorite(ctx, user.ID, types.Kind("starships"), planet.ID)
	assert.ErrorIs(t, err, types.ErrUnknownKind)

	t.Run("duplicate favorite is a conflict", func(t *testing.T) {
		_, err := s.CreateFavorite(ctx, types.NewFavorite(user.ID, types.KindPlanets, planet.ID))
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("dangling reference is not found", func(t *testing.T) {
		_, err := s.CreateFavorite(ctx, types.NewFavorite(user.ID, types.KindVehicles, 999))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("row without a reference violates the check constraint", func(t *testing.T) {
		_, err := s.CreateFavorite(ctx, types.Favorite{UserID: user.ID})
		assert.Error(t, err)
	})

	t.Run("deleting the entity cascades", func(t *testing.T) {
		require.NoError(t, s.DeletePlanetByID(ctx, planet.ID))

		favs, err := s.GetFavoritesByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, favs)
	})
}

func TestDeleteFavoriteByID(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	user, err := s.CreateUser(ctx, types.User{FirstName: "Rey", LastName: "Nobody", Email: "rey@jakku.net"})
	require.NoError(t, err)
	person, err := s.CreatePerson(ctx, types.Person{Name: "BB-8", HairColor: "none", SkinColor: "orange", EyeColor: "black", Gender: "none"})
	require.NoError(t, err)

	fav, err := s.CreateFavorite(ctx, types.NewFavorite(user.ID, types.KindPeople, person.ID))
	require.NoError(t, err)

	require.NoError(t, s.DeleteFavoriteByID(ctx, fav.ID))
	assert.ErrorIs(t, s.DeleteFavoriteByID(ctx, fav.ID), storage.ErrNotFound)
}
