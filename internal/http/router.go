package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/arindamg/taskledger/internal/auth"
	authHandler "github.com/arindamg/taskledger/internal/http/auth"
	clientHandler "github.com/arindamg/taskledger/internal/http/client"
	importHandler "github.com/arindamg/taskledger/internal/http/importcsv"
	invoiceHandler "github.com/arindamg/taskledger/internal/http/invoice"
	taskHandler "github.com/arindamg/taskledger/internal/http/task"
	taskMasterHandler "github.com/arindamg/taskledger/internal/http/taskmaster"
)

func New(
	authSvc *auth.Service,
	uploadDir string,
	authV1 *authHandler.Handler,
	clientsV1 *clientHandler.Handler,
	tasksV1 *taskHandler.Handler,
	taskMastersV1 *taskMasterHandler.Handler,
	invoicesV1 *invoiceHandler.Handler,
	importV1 *importHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authSvc.Middleware)

			authV1.ProtectedRoutes(r)

			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				clientsV1.Routes(r)
			})

			// Branding uploads are multipart, so no content-type guard here.
			r.Route("/companies", clientsV1.CompanyRoutes)

			r.Route("/tasks", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				tasksV1.Routes(r)
			})

			r.Route("/task-masters", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				taskMastersV1.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)
		})
	})

	return router
}
