package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/micro-ha/smarthome-dashboard/internal/http/handlers"
	"github.com/micro-ha/smarthome-dashboard/internal/metrics"
)

// NewRouter builds the HTTP routing tree. m may be nil, which disables
// request metrics and the /metrics endpoint.
func NewRouter(api *handlers.API, auth TokenVerifier, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoverJSON)
	r.Use(middleware.Timeout(20 * time.Second))
	r.Use(RequestLogger(api))
	if m != nil {
		r.Use(Metrics(m))
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	requireAuth := RequireAuth(auth)

	r.Get("/", api.Root)
	r.Get("/healthz", api.Health)
	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Route("/auth", func(authRouter chi.Router) {
			authRouter.Post("/login", api.Login)
			authRouter.Post("/register", api.Register)
			authRouter.Post("/reset-password", api.ResetPassword)
			authRouter.With(requireAuth).Post("/change-password", api.ChangePassword)
			authRouter.With(requireAuth).Delete("/delete-account", api.DeleteAccount)
		})

		apiRouter.Route("/devices", func(deviceRouter chi.Router) {
			deviceRouter.Get("/", api.ListDevices)
			deviceRouter.Group(func(protected chi.Router) {
				protected.Use(requireAuth)
				protected.Post("/", api.CreateDevice)
				protected.Post("/{id}/toggle", func(w http.ResponseWriter, r *http.Request) {
					api.ToggleDevice(w, r, chi.URLParam(r, "id"))
				})
				update := func(w http.ResponseWriter, r *http.Request) {
					api.UpdateDevice(w, r, chi.URLParam(r, "id"))
				}
				protected.Put("/{id}", update)
				protected.Patch("/{id}", update)
				protected.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
					api.DeleteDevice(w, r, chi.URLParam(r, "id"))
				})
			})
		})

		apiRouter.Get("/dashboard", api.Dashboard)
		apiRouter.With(requireAuth).Get("/protected", api.Protected)
	})
	return r
}

// RunServer starts and gracefully stops HTTP server with context cancellation.
func RunServer(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
