// Package router wires every HTTP route of the API onto a ServeMux and
// wraps it in the middleware chain.
package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/starwars-api/internal/favorites"
	"github.com/aanand-mishra/starwars-api/internal/http/handlers/entity"
	"github.com/aanand-mishra/starwars-api/internal/http/handlers/favorite"
	"github.com/aanand-mishra/starwars-api/internal/http/middleware"
	"github.com/aanand-mishra/starwars-api/internal/metrics"
	"github.com/aanand-mishra/starwars-api/internal/storage"
	"github.com/aanand-mishra/starwars-api/internal/utils/response"
)

// Options toggles the optional parts of the router.
type Options struct {
	Metrics bool
}

// New returns the fully wired handler. GET / lists every registered
// route pattern.
func New(store storage.Storage, log *slog.Logger, opts Options) http.Handler {
	mux := http.NewServeMux()
	var routes []string
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, h)
		routes = append(routes, strings.TrimSuffix(pattern, "{$}"))
	}

	users := entity.Users(store)
	people := entity.People(store)
	planets := entity.Planets(store)
	vehicles := entity.Vehicles(store)
	mgr := favorites.NewManager(store)

	handle("GET /{$}", index(&routes))

	handle("GET /users", users.GetList())
	handle("POST /users", users.New())
	handle("GET /users/{id}", users.GetByID())
	handle("DELETE /users/{id}", users.Remove())
	handle("GET /users/{id}/fav", favorite.List(mgr))

	handle("GET /people", people.GetList())
	handle("POST /people", people.New())
	handle("GET /people/{id}", people.GetByID())
	handle("DELETE /people/{id}", people.Remove())

	handle("GET /planets", planets.GetList())
	handle("POST /planets", planets.New())
	handle("GET /planets/{id}", planets.GetByID())
	handle("DELETE /planets/{id}", planets.Remove())

	handle("GET /vehicles", vehicles.GetList())
	handle("POST /vehicles", vehicles.New())
	handle("GET /vehicles/{id}", vehicles.GetByID())
	handle("DELETE /vehicles/{id}", vehicles.Remove())

	handle("POST /fav/{kind}/{id}", favorite.Add(mgr))
	handle("DELETE /fav/{kind}/{id}", favorite.Remove(mgr))

	handle("GET /healthz", health(store, log))

	if opts.Metrics {
		handle("GET /metrics", metrics.Handler())
	}

	// The metrics middleware sits directly on the mux: it reads the
	// matched pattern off the request, and RequestID replaces the
	// request before it reaches the inner handlers.
	var inner http.Handler = mux
	if opts.Metrics {
		inner = metrics.Middleware(mux)
	}

	return middleware.Chain(inner,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recoverer(log),
	)
}

func index(routes *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.List("Star Wars favorites API", *routes))
	}
}

func health(store storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			log.Error("health check failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(err))
			return
		}
		response.WriteJSON(w, http.StatusOK, response.Message("ok"))
	}
}
