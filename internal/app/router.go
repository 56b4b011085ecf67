package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/linemk/travel-insurance/internal/app/handlers"
	"github.com/linemk/travel-insurance/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/travel-insurance/internal/lib/logger/handlers/urllog"
	"github.com/linemk/travel-insurance/internal/service"
)

type RouterOptions struct {
	AllowedOrigins []string
	// AdminSecret включает проверку admin-токена на POST/PUT/DELETE
	AdminSecret string
}

// NewRouter собирает роутер API предложений
func NewRouter(log *slog.Logger, offerService service.OfferService, opts RouterOptions) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/", handlers.RootHandler(log))

	router.Route("/offers", func(r chi.Router) {
		r.Get("/", handlers.ListOffersHandler(log, offerService))
		// /filter объявлен до /{id}
		r.Get("/filter", handlers.FilterOffersHandler(log, offerService))
		r.Get("/{id}", handlers.GetOfferHandler(log, offerService))

		r.Group(func(r chi.Router) {
			if opts.AdminSecret != "" {
				r.Use(jwtmiddleware.New(opts.AdminSecret))
			}
			r.Post("/", handlers.CreateOfferHandler(log, offerService))
			r.Put("/{id}", handlers.UpdateOfferHandler(log, offerService))
			r.Delete("/{id}", handlers.DeleteOfferHandler(log, offerService))
		})
	})

	return router
}
