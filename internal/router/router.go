// Package router assembles the HTTP surface: services, bus subscribers and
// the gin route tree.
package router

import (
	"net/http"

	"carrental/internal/cache"
	"carrental/internal/config"
	"carrental/internal/events"
	"carrental/internal/metrics"
	"carrental/internal/middleware"
	"carrental/internal/modules/admin"
	"carrental/internal/modules/auth"
	"carrental/internal/modules/availability"
	"carrental/internal/modules/booking"
	"carrental/internal/modules/catalog"
	"carrental/internal/modules/extension"
	"carrental/internal/modules/favorite"
	"carrental/internal/modules/notification"
	"carrental/internal/modules/payment"
	"carrental/internal/modules/reservation"
	"carrental/internal/pkg/jwt"
	"carrental/internal/pkg/response"
	"carrental/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Deps struct {
	Config *config.Config
	Store  *repository.Store
	Tokens *jwt.Service
	Cache  cache.Cache
	Bus    *events.Bus
	Hub    *notification.Hub
	Log    zerolog.Logger
}

// New wires every module onto a fresh engine and subscribes the stats cache
// and notifications to d.Bus. Call it once per bus.
func New(d Deps) *gin.Engine {
	if d.Bus == nil {
		d.Bus = events.NewBus()
	}
	if d.Hub == nil {
		d.Hub = notification.NewHub()
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	cfg := d.Config
	store := d.Store

	lifecycle := reservation.NewLifecycle(d.Bus, d.Log)
	reservationService := reservation.NewService(store, lifecycle)
	bookingService := booking.NewService(store, lifecycle, d.Log)
	extensionService := extension.NewService(store, lifecycle)
	catalogService := catalog.NewService(store.Vehicles, d.Bus)
	authService := auth.NewService(store, d.Tokens, d.Bus, cfg.JWT.RefreshTTL, cfg.JWT.RefreshPepper)
	paymentService := payment.NewService(store.Payments, store.Reservations, d.Log)
	favoriteService := favorite.NewService(store.Favorites, store.Vehicles)
	adminService := admin.NewService(store.Vehicles, store.Users, store.Reservations, d.Cache, d.Log)
	notificationService := notification.NewService(store.Notifications, d.Hub, d.Log)

	d.Bus.SubscribeAll(adminService.InvalidateStats)
	d.Bus.SubscribeAll(notificationService.HandleEvent)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService, reservationService)
	availabilityHandler := availability.NewHandler(bookingService)
	bookingHandler := booking.NewHandler(bookingService)
	reservationHandler := reservation.NewHandler(reservationService)
	extensionHandler := extension.NewHandler(extensionService, reservationService)
	paymentHandler := payment.NewHandler(paymentService)
	favoriteHandler := favorite.NewHandler(favoriteService)
	adminHandler := admin.NewHandler(adminService)
	notificationHandler := notification.NewHandler(notificationService, d.Hub, middleware.AllowedOrigins(cfg.CORSOrigins), d.Log)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORS(cfg.CORSOrigins),
	)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := store.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		metrics.Register()
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	guard := limiter.Middleware()
	jwtAuth := middleware.JWTAuth(d.Tokens)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1, guard)
		catalogHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
	}

	protected := v1.Group("", jwtAuth)
	{
		authHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected, guard)
		reservationHandler.RegisterRoutes(protected)
		extensionHandler.RegisterRoutes(protected, guard)
		paymentHandler.RegisterRoutes(protected)
		favoriteHandler.RegisterRoutes(protected)
		notificationHandler.RegisterRoutes(protected)
	}

	adminGroup := protected.Group("/admin", middleware.AdminOnly())
	{
		adminHandler.RegisterRoutes(adminGroup)
		reservationHandler.RegisterAdminRoutes(adminGroup)
		catalogHandler.RegisterAdminRoutes(adminGroup)
	}

	notificationHandler.RegisterWebsocket(r.Group("", jwtAuth))

	return r
}
