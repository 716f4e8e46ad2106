// Package entity contains the HTTP handlers for the plain CRUD
// collections: users, people, planets and vehicles.
//
// HANDLER PATTERN USED HERE: CLOSURE / FACTORY
// ────────────────────────────────────────────────────────────
// Each handler is built once at startup by a factory that captures its
// dependencies and returns a func(http.ResponseWriter, *http.Request).
// The four collections behave identically, so the factories are methods
// on a generic Resource that is parameterised by the model type and the
// storage functions backing it:
//
//	users := entity.Users(storage)
//	router.HandleFunc("GET /users/{id}", users.GetByID())
package entity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/utils/request"
	"github.com/aanand-mishra/starwars-api/internal/utils/response"
)

// Resource describes one collection.
type Resource[T any] struct {
	// Singular and Plural are used in messages, e.g. "Planet" / "planets".
	Singular string
	Plural   string

	Create func(ctx context.Context, v T) (T, error)
	Get    func(ctx context.Context, id int64) (T, error)
	List   func(ctx context.Context) ([]T, error)
	Delete func(ctx context.Context, id int64) error
}

// New handles POST /{collection}. Responds 201 with the stored record.
func (res Resource[T]) New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating " + res.Singular)

		var v T
		if !request.DecodeJSON(w, r, &v) {
			return
		}

		created, err := res.Create(r.Context(), v)
		if err != nil {
			res.writeError(w, err, 0)
			return
		}

		response.WriteJSON(w, http.StatusCreated,
			response.OK(res.Singular+" created", created))
	}
}

// GetByID handles GET /{collection}/{id}.
func (res Resource[T]) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := request.PathID(w, r, "id")
		if !ok {
			return
		}
		slog.Info("getting "+res.Singular, slog.Int64("id", id))

		v, err := res.Get(r.Context(), id)
		if err != nil {
			res.writeError(w, err, id)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK(fmt.Sprintf("%s with id: %d", res.Singular, id), v))
	}
}

// GetList handles GET /{collection}. An empty collection is a 200 with
// an empty results array.
func (res Resource[T]) GetList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all " + res.Plural)

		list, err := res.List(r.Context())
		if err != nil {
			res.writeError(w, err, 0)
			return
		}

		msg := "These are the registered " + res.Plural
		if len(list) == 0 {
			msg = "No registered " + res.Plural
		}
		response.WriteJSON(w, http.StatusOK, response.List(msg, list))
	}
}

// Remove handles DELETE /{collection}/{id}.
func (res Resource[T]) Remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := request.PathID(w, r, "id")
		if !ok {
			return
		}
		slog.Info("deleting "+res.Singular, slog.Int64("id", id))

		if err := res.Delete(r.Context(), id); err != nil {
			res.writeError(w, err, id)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.Message(fmt.Sprintf("%s with id: %d deleted", res.Singular, id)))
	}
}

func (res Resource[T]) writeError(w http.ResponseWriter, err error, id int64) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(
			fmt.Errorf("%s with id: %d doesn't exist", res.Singular, id)))
	case errors.Is(err, storage.ErrConflict):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(
			fmt.Errorf("%s already exists", res.Singular)))
	default:
		slog.Error("storage error",
			slog.String("resource", res.Plural),
			slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
	}
}
