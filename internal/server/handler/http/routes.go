package http

import (
	"net/http"

	"contactdesk/internal/middleware"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the contactdesk API.
// It applies JSON content-type enforcement and request logging globally,
// mounts the public registration and login endpoints, and gates everything
// else behind bearer-token authentication.
//
// Routes:
//
//	POST   /api/users                                        → register
//	POST   /api/users/login                                  → login
//	GET    /api/users/current                                → current profile
//	PATCH  /api/users/current                                → update profile
//	DELETE /api/users/current                                → logout
//	POST   /api/contacts                                     → create contact
//	GET    /api/contacts                                     → search contacts
//	GET    /api/contacts/{contactID}                         → get contact
//	PUT    /api/contacts/{contactID}                         → update contact
//	DELETE /api/contacts/{contactID}                         → delete contact
//	POST   /api/contacts/{contactID}/addresses               → create address
//	GET    /api/contacts/{contactID}/addresses               → list addresses
//	GET    /api/contacts/{contactID}/addresses/{addressID}   → get address
//	PUT    /api/contacts/{contactID}/addresses/{addressID}   → update address
//	DELETE /api/contacts/{contactID}/addresses/{addressID}   → delete address
func NewRouter(
	userHandler *UserHandler,
	contactHandler *ContactHandler,
	addressHandler *AddressHandler,
	resolver middleware.UserResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	// (requests without a body pass through).
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.TokenAuth(resolver))

			r.Get("/users/current", userHandler.Current)
			r.Patch("/users/current", userHandler.Update)
			r.Delete("/users/current", userHandler.Logout)

			r.Route("/contacts", func(r chi.Router) {
				r.Post("/", contactHandler.Create)
				r.Get("/", contactHandler.Search)

				r.Route("/{contactID}", func(r chi.Router) {
					r.Get("/", contactHandler.Get)
					r.Put("/", contactHandler.Update)
					r.Delete("/", contactHandler.Remove)

					r.Route("/addresses", func(r chi.Router) {
						r.Post("/", addressHandler.Create)
						r.Get("/", addressHandler.List)
						r.Get("/{addressID}", addressHandler.Get)
						r.Put("/{addressID}", addressHandler.Update)
						r.Delete("/{addressID}", addressHandler.Remove)
					})
				})
			})
		})
	})

	return r
}
