package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cheflink/backoffice/internal/auth"
	"github.com/cheflink/backoffice/internal/client"
	"github.com/cheflink/backoffice/internal/config"
	"github.com/cheflink/backoffice/internal/handler"
	"github.com/cheflink/backoffice/internal/mail"
	mw "github.com/cheflink/backoffice/internal/middleware"
	"github.com/cheflink/backoffice/internal/model"
	"github.com/cheflink/backoffice/internal/screen"
	"github.com/cheflink/backoffice/internal/wizard"
	"github.com/cheflink/backoffice/internal/ws"
)

// Deps are the wired application components the router exposes.
type Deps struct {
	Customers  *screen.Customers
	Products   *screen.Products
	Categories *screen.Categories
	Halls      *screen.Halls
	Tables     *screen.Tables
	Payments   *screen.Payments

	ProductCatalog *client.Products
	TablesClient   *client.Tables
	HallNames      *screen.HallNameCache

	Sessions *wizard.Manager
	Auth     *auth.LoginClient
	Mail     *mail.Sender
	Hub      *ws.Hub
}

// New creates a Chi router with all back-office routes wired up.
func New(cfg *config.Config, d Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(d.Auth)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/notifications", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(d.Hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Route("/api", func(r chi.Router) {
			customerHandler := handler.NewCrudHandler[model.Customer, model.CustomerDraft]("client", d.Customers, d.Hub, handler.ValidateCustomerDraft)
			r.Route("/clients", customerHandler.RegisterRoutes)

			categoryHandler := handler.NewCrudHandler[model.Category, model.CategoryDraft]("category", d.Categories, d.Hub, handler.ValidateCategoryDraft)
			r.Route("/categories", categoryHandler.RegisterRoutes)

			productHandler := handler.NewProductHandler(d.Products, d.ProductCatalog, d.Hub)
			r.Route("/products", productHandler.RegisterRoutes)

			hallHandler := handler.NewCrudHandler[model.Hall, model.HallDraft]("hall", d.Halls, d.Hub, handler.ValidateHallDraft).
				AfterWrite(d.HallNames.Invalidate)
			r.Route("/halls", hallHandler.RegisterRoutes)

			tableHandler := handler.NewTableHandler(d.Tables, d.TablesClient, d.HallNames, d.Hub)
			r.Route("/tables", tableHandler.RegisterRoutes)

			paymentHandler := handler.NewCrudHandler[model.PaymentMethod, model.PaymentMethodDraft]("payment method", d.Payments, d.Hub, handler.ValidatePaymentMethodDraft)
			r.Route("/payment-methods", paymentHandler.RegisterRoutes)

			orderHandler := handler.NewOrderHandler(d.Sessions, d.Halls, d.Customers, d.Mail, d.Hub)
			r.Route("/orders", orderHandler.RegisterRoutes)
		})
	})

	return r
}
