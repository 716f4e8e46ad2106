package favorites

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/storage/sqlite"
	"github.com/aanand-mishra/starwars-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mgr     *Manager
	store   *sqlite.SQLite
	user    types.User
	person  types.Person
	planet  types.Planet
	vehicle types.Vehicle
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := fixture{mgr: NewManager(store), store: store}
	f.user, err = store.CreateUser(ctx, types.User{FirstName: "Luke", LastName: "Skywalker", Email: "luke@rebels.org"})
	require.NoError(t, err)
	f.person, err = store.CreatePerson(ctx, types.Person{Name: "Yoda", Height: 66, Mass: 17, HairColor: "white", SkinColor: "green", EyeColor: "brown", BirthYear: 896, Gender: "male"})
	require.NoError(t, err)
	f.planet, err = store.CreatePlanet(ctx, types.Planet{Name: "Dagobah", Diameter: 8900, RotationPeriod: 23, Gravity: 1, Climate: "murky"})
	require.NoError(t, err)
	f.vehicle, err = store.CreateVehicle(ctx, types.Vehicle{Model: "Snowspeeder", VehicleClass: "airspeeder", Manufacturer: "Incom Corporation", Length: 5, CargoCapacity: 10})
	require.NoError(t, err)
	return f
}

func (f fixture) entityID(kind types.Kind) int64 {
	switch kind {
	case types.KindPeople:
		return f.person.ID
	case types.KindPlanets:
		return f.planet.ID
	default:
		return f.vehicle.ID
	}
}

func TestAddListRemoveEveryKind(t *testing.T) {
	for _, kind := range types.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()
			f := setup(t)
			id := f.entityID(kind)

			fav, err := f.mgr.Add(ctx, f.user.ID, kind, id)
			require.NoError(t, err)
			gotKind, gotID, ok := fav.Target()
			require.True(t, ok)
			assert.Equal(t, kind, gotKind)
			assert.Equal(t, id, gotID)

			favs, err := f.mgr.List(ctx, f.user.ID)
			require.NoError(t, err)
			assert.Equal(t, []types.Favorite{fav}, favs)

			require.NoError(t, f.mgr.Remove(ctx, f.user.ID, kind, id))

			favs, err = f.mgr.List(ctx, f.user.ID)
			require.NoError(t, err)
			assert.Empty(t, favs)
		})
	}
}

func TestAddTwiceIsRejected(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.mgr.Add(ctx, f.user.ID, types.KindPlanets, f.planet.ID)
	require.NoError(t, err)

	_, err = f.mgr.Add(ctx, f.user.ID, types.KindPlanets, f.planet.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)

	favs, err := f.mgr.List(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestSameIDDifferentKindsAreDistinct(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	// All three catalogues start at id 1 in a fresh database.
	require.Equal(t, f.person.ID, f.planet.ID)

	_, err := f.mgr.Add(ctx, f.user.ID, types.KindPeople, f.person.ID)
	require.NoError(t, err)
	_, err = f.mgr.Add(ctx, f.user.ID, types.KindPlanets, f.planet.ID)
	require.NoError(t, err)

	favs, err := f.mgr.List(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 2)
}

func TestPreconditionErrors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name    string
		userID  int64
		kind    types.Kind
		id      int64
		wantErr error
	}{
		{name: "unknown kind", userID: f.user.ID, kind: "starships", id: 1, wantErr: ErrUnknownKind},
		{name: "missing user", userID: 999, kind: types.KindPeople, id: f.person.ID, wantErr: ErrUserNotFound},
		{name: "missing person", userID: f.user.ID, kind: types.KindPeople, id: 999, wantErr: ErrEntityNotFound},
		{name: "missing planet", userID: f.user.ID, kind: types.KindPlanets, id: 999, wantErr: ErrEntityNotFound},
		{name: "missing vehicle", userID: f.user.ID, kind: types.KindVehicles, id: 999, wantErr: ErrEntityNotFound},
	}

	for _, tt := range tests {
		t.Run("add "+tt.name, func(t *testing.T) {
			_, err := f.mgr.Add(context.Background(), tt.userID, tt.kind, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
		t.Run("remove "+tt.name, func(t *testing.T) {
			err := f.mgr.Remove(context.Background(), tt.userID, tt.kind, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoveNonExistentFavorite(t *testing.T) {
	f := setup(t)

	err := f.mgr.Remove(context.Background(), f.user.ID, types.KindVehicles, f.vehicle.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestListSeparatesMissingUserFromNoFavorites(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	favs, err := f.mgr.List(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)

	_, err = f.mgr.List(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// racingStore pretends the duplicate check passed but the insert then
// hit the unique index, as happens when two Adds race.
type racingStore struct {
	*sqlite.SQLite
}

func (racingStore) FindFavorite(context.Context, int64, types.Kind, int64) (types.Favorite, error) {
	return types.Favorite{}, storage.ErrNotFound
}

func (racingStore) CreateFavorite(context.Context, types.Favorite) (types.Favorite, error) {
	return types.Favorite{}, storage.ErrConflict
}

func TestAddTranslatesStoreConflict(t *testing.T) {
	f := setup(t)
	mgr := NewManager(racingStore{f.store})

	_, err := mgr.Add(context.Background(), f.user.ID, types.KindPeople, f.person.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorite)
}

// vanishingStore deletes a row right before inserting the favorite,
// as happens when a DELETE lands between Add's checks and its insert.
type vanishingStore struct {
	*sqlite.SQLite
	vanish func(ctx context.Context) error
}

func (s vanishingStore) CreateFavorite(ctx context.Context, fav types.Favorite) (types.Favorite, error) {
	if err := s.vanish(ctx); err != nil {
		return types.Favorite{}, err
	}
	return s.SQLite.CreateFavorite(ctx, fav)
}

func TestAddReportsRowDeletedConcurrently(t *testing.T) {
	tests := []struct {
		name   string
		vanish func(f fixture) func(ctx context.Context) error
		want   error
	}{
		{
			name: "user deleted",
			vanish: func(f fixture) func(ctx context.Context) error {
				return func(ctx context.Context) error { return f.store.DeleteUserByID(ctx, f.user.ID) }
			},
			want: ErrUserNotFound,
		},
		{
			name: "planet deleted",
			vanish: func(f fixture) func(ctx context.Context) error {
				return func(ctx context.Context) error { return f.store.DeletePlanetByID(ctx, f.planet.ID) }
			},
			want: ErrEntityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			mgr := NewManager(vanishingStore{SQLite: f.store, vanish: tt.vanish(f)})

			_, err := mgr.Add(context.Background(), f.user.ID, types.KindPlanets, f.planet.ID)
			assert.ErrorIs(t, err, tt.want)

			favs, err := f.store.GetFavoritesByUser(context.Background(), f.user.ID)
			require.NoError(t, err)
			assert.Empty(t, favs)
		})
	}
}

type brokenStore struct {
	*sqlite.SQLite
}

var errBroken = errors.New("disk on fire")

func (brokenStore) GetUserByID(context.Context, int64) (types.User, error) {
	return types.User{}, errBroken
}

func TestStoreFailuresPropagate(t *testing.T) {
	f := setup(t)
	mgr := NewManager(brokenStore{f.store})

	_, err := mgr.List(context.Background(), f.user.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
