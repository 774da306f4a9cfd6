package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nomadstay/internal/infra/config"
	"nomadstay/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	HostCancel(c *gin.Context)
	ListMine(c *gin.Context)
}

type AvailabilityHTTP interface {
	List(c *gin.Context)
	Bulk(c *gin.Context)
	DeleteByListing(c *gin.Context)
}

type ListingHTTP interface {
	Get(c *gin.Context)
}

type HostBookingHTTP interface {
	List(c *gin.Context)
}

type Handlers struct {
	Booking      BookingHTTP
	Availability AvailabilityHTTP
	Listing      ListingHTTP
	HostBooking  HostBookingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{Addr: cfg.HTTPAddr, Handler: NewRouter(cfg, obsMW, health, h)}
}

// NewRouter builds the gin engine; split out of NewServer so tests can drive
// it with httptest.
func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", IdempotencyKeyHeader, UserIDHeader},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			obs.RequestIDHeader,
		},
		MaxAge: 12 * time.Hour,
	}))
	router.Use(IdentityMiddleware())

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	if h.Listing != nil {
		router.GET("/listings/:id/", h.Listing.Get)
	}
	if h.Availability != nil {
		router.GET("/availability/", h.Availability.List)
		router.POST("/availability/bulk/", h.Availability.Bulk)
		router.POST("/availability/delete-by-listing/", h.Availability.DeleteByListing)
	}
	if h.Booking != nil {
		router.GET("/bookings/", h.Booking.ListMine)
		router.POST("/bookings/", h.Booking.Create)
		router.POST("/bookings/:id/host-cancel/", h.Booking.HostCancel)
	}
	if h.HostBooking != nil {
		router.GET("/host-bookings/", h.HostBooking.List)
	}

	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
