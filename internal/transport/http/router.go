package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-po-api/internal/application/document"
	"github.com/go-po-api/internal/application/order"
	"github.com/go-po-api/internal/application/otp"
	"github.com/go-po-api/internal/application/signature"
	"github.com/go-po-api/internal/application/supplier"
	"github.com/go-po-api/internal/config"
	"github.com/go-po-api/internal/transport/http/handler"
	appmiddleware "github.com/go-po-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — the OTP endpoints are a brute-force surface.
	otpRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.CredentialStore, deps.Gateway, cfg.OTPDeliveryTimeout)
	orderSvc := order.NewService(deps.OrderRepo)
	signatureSvc := signature.NewService(deps.OrderRepo, otpSvc)
	supplierSvc := supplier.NewService()
	var documentSvc document.Service
	if deps.DocumentStore != nil {
		documentSvc = document.NewService(deps.OrderRepo, deps.DocumentStore)
	} else {
		documentSvc = document.NewService(deps.OrderRepo, nil)
	}

	healthH := handler.NewHealthHandler()
	orderH := handler.NewOrderHandler(orderSvc, documentSvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)
	signatureH := handler.NewSignatureHandler(signatureSvc, cfg.DefaultSignerID, cfg.AppEnv != "production")

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/suppliers", supplierH.List)

			r.Get("/purchase-orders", orderH.List)
			r.Post("/purchase-orders", orderH.Create)
			r.Get("/purchase-orders/{id}", orderH.Get)
			r.Put("/purchase-orders/{id}", orderH.Update)
			r.Delete("/purchase-orders/{id}", orderH.Delete)
			r.Get("/purchase-orders/{id}/document", orderH.Document)

			r.With(otpRL.Limit).Post("/purchase-orders/{id}/signature/request", signatureH.Request)
			r.With(otpRL.Limit).Post("/purchase-orders/{id}/signature/verify", signatureH.Verify)
			r.Post("/purchase-orders/{id}/signature/cancel", signatureH.Cancel)
		})
	})

	return r
}
