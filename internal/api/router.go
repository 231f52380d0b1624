package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/herculesvale/vale-service/internal/api/handlers"
	"github.com/herculesvale/vale-service/internal/api/middleware"
	"github.com/herculesvale/vale-service/internal/auth"
	"github.com/herculesvale/vale-service/internal/directory"
	"github.com/herculesvale/vale-service/internal/service"
)

// Deps are the collaborators the router wires together.
type Deps struct {
	Logger     *zap.Logger
	Tokens     *auth.TokenManager
	Directory  *directory.Directory
	Vouchers   *service.VoucherService
	SubClients *service.SubClientService
}

// NewRouter builds the HTTP router for the vale-service.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	authHandler := handlers.NewAuthHandler(deps.Directory, deps.Tokens)
	voucherHandler := handlers.NewVoucherHandler(deps.Vouchers)
	subClientHandler := handlers.NewSubClientHandler(deps.SubClients)

	// public endpoints
	r.Post("/auth/login", authHandler.Login)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// distributor-scoped endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Bearer(deps.Tokens))

		r.Route("/vouchers", func(r chi.Router) {
			r.Post("/", voucherHandler.Create)
			r.Get("/", voucherHandler.List)
			r.Get("/{id}", voucherHandler.Get)
			r.Post("/{id}/use", voucherHandler.MarkUsed)
			r.Get("/{id}/share", voucherHandler.Share)
		})

		r.Route("/subclients", func(r chi.Router) {
			r.Post("/", subClientHandler.Add)
			r.Get("/", subClientHandler.List)
		})
	})

	return r
}
