package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/restauranteos/restauranteos-backend/api/controllers"
	"github.com/restauranteos/restauranteos-backend/api/middleware"
	"github.com/restauranteos/restauranteos-backend/internal/auth"
	botflowsvc "github.com/restauranteos/restauranteos-backend/internal/botflows"
	checkoutsvc "github.com/restauranteos/restauranteos-backend/internal/checkout"
	"github.com/restauranteos/restauranteos-backend/internal/orders"
	"github.com/restauranteos/restauranteos-backend/internal/payments"
	productsvc "github.com/restauranteos/restauranteos-backend/internal/products"
	tenantsvc "github.com/restauranteos/restauranteos-backend/internal/tenants"
	trackingsvc "github.com/restauranteos/restauranteos-backend/internal/tracking"
	"github.com/restauranteos/restauranteos-backend/pkg/auth/session"
	"github.com/restauranteos/restauranteos-backend/pkg/config"
	"github.com/restauranteos/restauranteos-backend/pkg/db"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	"github.com/restauranteos/restauranteos-backend/pkg/logger"
	"github.com/restauranteos/restauranteos-backend/pkg/redis"
)

// Deps bundles everything the HTTP layer needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Sessions        session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	TenantService   tenantsvc.Service
	ProductService  productsvc.Service
	OrderService    orders.Service
	PaymentService  payments.Service
	BotFlowService  botflowsvc.Service
	CheckoutService checkoutsvc.Service
	TrackingService trackingsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, deps.Redis, logg),
			middleware.Idempotency(deps.Redis, logg),
		).Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	// Customer storefront. Tenant resolution happens per request via slug.
	r.Route("/api/v1/t/{tenantSlug}", func(r chi.Router) {
		r.Get("/catalog", controllers.PublicCatalog(deps.TenantService, deps.ProductService, logg))
		r.Post("/quote", controllers.PublicQuote(deps.CheckoutService, logg))
		r.With(middleware.Idempotency(deps.Redis, logg)).Post("/checkout", controllers.PublicCheckout(deps.CheckoutService, logg))
		r.Post("/bot/messages", controllers.PublicBotMessage(deps.TenantService, deps.BotFlowService, logg))
	})

	r.Get("/api/v1/track/{orderNumber}", controllers.PublicTrack(deps.TrackingService, logg))

	// Platform operator panel. Superadmin sessions carry no tenant scope,
	// so RequireTenant stays off this group.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.MemberRoleSuperadmin))

		r.Route("/tenants", func(r chi.Router) {
			r.Get("/", controllers.AdminListTenants(deps.TenantService, logg))
			r.Post("/{tenantId}/suspend", controllers.AdminSuspendTenant(deps.TenantService, logg))
			r.Post("/{tenantId}/activate", controllers.AdminActivateTenant(deps.TenantService, logg))
		})
	})

	// Staff dashboard. Everything below requires a tenant-scoped session.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireTenant(logg))
		r.Use(middleware.RequireRole(logg, enums.MemberRoleOwner, enums.MemberRoleStaff))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.OrderService, logg))
			r.Post("/", controllers.CreateOrder(deps.OrderService, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.OrderService, logg))
			r.Post("/{orderId}/advance", controllers.AdvanceOrder(deps.OrderService, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.OrderService, logg))
			r.Get("/{orderId}/payments", controllers.ListOrderPayments(deps.PaymentService, logg))
			r.Post("/{orderId}/payments", controllers.RecordPayment(deps.PaymentService, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.ListPayments(deps.PaymentService, logg))
			r.Post("/{paymentId}/confirm", controllers.ConfirmPayment(deps.PaymentService, logg))
			r.Post("/{paymentId}/reject", controllers.RejectPayment(deps.PaymentService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
			r.Put("/{productId}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.ProductService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(deps.ProductService, logg))
			r.Delete("/{categoryId}", controllers.DeleteCategory(deps.ProductService, logg))
		})

		r.Route("/botflows", func(r chi.Router) {
			r.Get("/", controllers.ListBotFlows(deps.BotFlowService, logg))
			r.Post("/", controllers.CreateBotFlow(deps.BotFlowService, logg))
			r.Put("/{flowId}", controllers.UpdateBotFlow(deps.BotFlowService, logg))
			r.Delete("/{flowId}", controllers.DeleteBotFlow(deps.BotFlowService, logg))
		})

		r.Route("/tenant", func(r chi.Router) {
			r.Get("/settings", controllers.TenantSettings(deps.TenantService, logg))
			r.With(middleware.RequireRole(logg, enums.MemberRoleOwner)).
				Put("/settings", controllers.UpdateTenantSettings(deps.TenantService, logg))
		})
	})

	return r
}
