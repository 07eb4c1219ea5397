package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-currency-ledger/internal/middlewares"
)

type routes struct {
	register http.HandlerFunc
	login    http.HandlerFunc
	rates    http.HandlerFunc
	balance  http.HandlerFunc
	fund     http.HandlerFunc
	buy      http.HandlerFunc
	sell     http.HandlerFunc
	holdings http.HandlerFunc
	history  http.HandlerFunc

	auth   func(http.Handler) http.Handler
	readTx func(http.Handler) http.Handler

	corsOrigins []string
	swaggerURL  string
}

// newRouter mounts the public and authenticated routes under /api/v1.
func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", rt.register)
		r.Post("/login", rt.login)
		r.Get("/rates", rt.rates)

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(rt.auth)
			r.Get("/balance", rt.balance)
			r.Post("/fund", rt.fund)
			r.Post("/buy", rt.buy)
			r.Post("/sell", rt.sell)

			r.Group(func(r chi.Router) {
				r.Use(rt.readTx)
				r.Get("/holdings", rt.holdings)
				r.Get("/history", rt.history)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(rt.swaggerURL)))
	return r
}
