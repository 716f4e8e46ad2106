// Package favorite contains the HTTP handlers of the favorites routes:
//
//	POST   /fav/{kind}/{id}   body {"user_id": N}   add a favorite
//	DELETE /fav/{kind}/{id}   body {"user_id": N}   remove a favorite
//	GET    /users/{id}/fav                          list a user's favorites
//
// Status codes:
//
//	200 OK        success (an empty list included)
//	400 Bad Req.  malformed id or body
//	404 Not Found unknown kind, missing user, entity or favorite
//	409 Conflict  the entity already is a favorite of the user
//	500 Internal  store failure
package favorite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/starwars-api/internal/favorites"
	"github.com/aanand-mishra/starwars-api/internal/metrics"
	"github.com/aanand-mishra/starwars-api/internal/types"
	"github.com/aanand-mishra/starwars-api/internal/utils/request"
	"github.com/aanand-mishra/starwars-api/internal/utils/response"
)

// Manager is what the handlers need from favorites.Manager.
type Manager interface {
	Add(ctx context.Context, userID int64, kind types.Kind, entityID int64) (types.Favorite, error)
	Remove(ctx context.Context, userID int64, kind types.Kind, entityID int64) error
	List(ctx context.Context, userID int64) ([]types.Favorite, error)
}

var labels = map[types.Kind]string{
	types.KindPeople:   "Person",
	types.KindPlanets:  "Planet",
	types.KindVehicles: "Vehicle",
}

// Add handles POST /fav/{kind}/{id}.
func Add(mgr Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, entityID, body, ok := parse(w, r)
		if !ok {
			return
		}
		slog.Info("adding favorite",
			slog.Int64("user_id", body.UserID),
			slog.String("kind", string(kind)),
			slog.Int64("id", entityID))

		fav, err := mgr.Add(r.Context(), body.UserID, kind, entityID)
		record("add", kind, err)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK(labels[kind]+" added to favorites", fav))
	}
}

// Remove handles DELETE /fav/{kind}/{id}.
func Remove(mgr Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, entityID, body, ok := parse(w, r)
		if !ok {
			return
		}
		slog.Info("removing favorite",
			slog.Int64("user_id", body.UserID),
			slog.String("kind", string(kind)),
			slog.Int64("id", entityID))

		err := mgr.Remove(r.Context(), body.UserID, kind, entityID)
		record("remove", kind, err)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.Message(labels[kind]+" deleted from favorites"))
	}
}

// List handles GET /users/{id}/fav.
func List(mgr Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := request.PathID(w, r, "id")
		if !ok {
			return
		}
		slog.Info("listing favorites", slog.Int64("user_id", userID))

		favs, err := mgr.List(r.Context(), userID)
		record("list", "", err)
		if err != nil {
			writeError(w, err)
			return
		}

		msg := "These are the user favorites"
		if len(favs) == 0 {
			msg = "The user has no favorites yet"
		}
		response.WriteJSON(w, http.StatusOK, response.List(msg, favs))
	}
}

func parse(w http.ResponseWriter, r *http.Request) (types.Kind, int64, types.FavoriteRequest, bool) {
	var body types.FavoriteRequest

	kind, err := types.ParseKind(r.PathValue("kind"))
	if err != nil {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return "", 0, body, false
	}
	entityID, ok := request.PathID(w, r, "id")
	if !ok {
		return "", 0, body, false
	}
	if !request.DecodeJSON(w, r, &body) {
		return "", 0, body, false
	}
	return kind, entityID, body, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, favorites.ErrUnknownKind),
		errors.Is(err, favorites.ErrUserNotFound),
		errors.Is(err, favorites.ErrEntityNotFound),
		errors.Is(err, favorites.ErrFavoriteNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	case errors.Is(err, favorites.ErrAlreadyFavorite):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	default:
		slog.Error("favorites failure", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError,
			response.GeneralError(fmt.Errorf("internal error: %w", err)))
	}
}

func record(op string, kind types.Kind, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, favorites.ErrAlreadyFavorite):
		result = "conflict"
	case errors.Is(err, favorites.ErrUserNotFound),
		errors.Is(err, favorites.ErrEntityNotFound),
		errors.Is(err, favorites.ErrFavoriteNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.FavoriteOps.WithLabelValues(op, string(kind), result).Inc()
}
