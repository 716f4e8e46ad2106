// Package favorites manages the user ↔ catalogue join.
//
// Every operation checks its preconditions in the order a client would
// expect to hear about them: unknown kind, missing user, missing entity,
// then the favorite row itself. The store's unique indexes back up the
// duplicate check, so two concurrent Adds of the same favorite still
// produce exactly one row.
package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/types"
)

var (
	ErrUserNotFound     = errors.New("user isn't registered")
	ErrEntityNotFound   = errors.New("entity doesn't exist")
	ErrAlreadyFavorite  = errors.New("entity is already a favorite")
	ErrFavoriteNotFound = errors.New("entity isn't a favorite")
	ErrUnknownKind      = types.ErrUnknownKind
)

// Store is the subset of storage.Storage the manager needs.
type Store interface {
	GetUserByID(ctx context.Context, id int64) (types.User, error)
	GetPersonByID(ctx context.Context, id int64) (types.Person, error)
	GetPlanetByID(ctx context.Context, id int64) (types.Planet, error)
	GetVehicleByID(ctx context.Context, id int64) (types.Vehicle, error)

	CreateFavorite(ctx context.Context, fav types.Favorite) (types.Favorite, error)
	FindFavorite(ctx context.Context, userID int64, kind types.Kind, entityID int64) (types.Favorite, error)
	GetFavoritesByUser(ctx context.Context, userID int64) ([]types.Favorite, error)
	DeleteFavoriteByID(ctx context.Context, id int64) error
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Add makes the entity a favorite of the user and returns the new row.
func (m *Manager) Add(ctx context.Context, userID int64, kind types.Kind, entityID int64) (types.Favorite, error) {
	if err := m.checkTarget(ctx, userID, kind, entityID); err != nil {
		return types.Favorite{}, err
	}

	_, err := m.store.FindFavorite(ctx, userID, kind, entityID)
	switch {
	case err == nil:
		return types.Favorite{}, fmt.Errorf("%s %d: %w", kind, entityID, ErrAlreadyFavorite)
	case !errors.Is(err, storage.ErrNotFound):
		return types.Favorite{}, fmt.Errorf("favorites.Add: %w", err)
	}

	fav, err := m.store.CreateFavorite(ctx, types.NewFavorite(userID, kind, entityID))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			// Lost a race with a concurrent Add of the same favorite.
			return types.Favorite{}, fmt.Errorf("%s %d: %w", kind, entityID, ErrAlreadyFavorite)
		case errors.Is(err, storage.ErrNotFound):
			// User or entity deleted between the checks and the insert.
			if err := m.checkUser(ctx, userID); err != nil {
				return types.Favorite{}, err
			}
			return types.Favorite{}, fmt.Errorf("%s %d: %w", kind, entityID, ErrEntityNotFound)
		}
		return types.Favorite{}, fmt.Errorf("favorites.Add: %w", err)
	}
	return fav, nil
}

// Remove deletes the favorite linking the user to the entity.
func (m *Manager) Remove(ctx context.Context, userID int64, kind types.Kind, entityID int64) error {
	if err := m.checkTarget(ctx, userID, kind, entityID); err != nil {
		return err
	}

	fav, err := m.store.FindFavorite(ctx, userID, kind, entityID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", kind, entityID, ErrFavoriteNotFound)
		}
		return fmt.Errorf("favorites.Remove: %w", err)
	}

	if err := m.store.DeleteFavoriteByID(ctx, fav.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", kind, entityID, ErrFavoriteNotFound)
		}
		return fmt.Errorf("favorites.Remove: %w", err)
	}
	return nil
}

// List returns every favorite of the user. A user without favorites
// gets an empty slice; only a missing user is an error.
func (m *Manager) List(ctx context.Context, userID int64) ([]types.Favorite, error) {
	if err := m.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	favs, err := m.store.GetFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorites.List: %w", err)
	}
	return favs, nil
}

func (m *Manager) checkUser(ctx context.Context, userID int64) error {
	if _, err := m.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
		}
		return fmt.Errorf("favorites: get user: %w", err)
	}
	return nil
}

func (m *Manager) checkTarget(ctx context.Context, userID int64, kind types.Kind, entityID int64) error {
	if _, err := types.ParseKind(string(kind)); err != nil {
		return err
	}
	if err := m.checkUser(ctx, userID); err != nil {
		return err
	}

	var err error
	switch kind {
	case types.KindPeople:
		_, err = m.store.GetPersonByID(ctx, entityID)
	case types.KindPlanets:
		_, err = m.store.GetPlanetByID(ctx, entityID)
	case types.KindVehicles:
		_, err = m.store.GetVehicleByID(ctx, entityID)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", kind, entityID, ErrEntityNotFound)
		}
		return fmt.Errorf("favorites: get %s: %w", kind, err)
	}
	return nil
}
