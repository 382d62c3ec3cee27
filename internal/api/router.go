package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	availHttp "github.com/nekogravitycat/stay-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/stay-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/stay-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
	pricingHttp "github.com/nekogravitycat/stay-booking-backend/internal/pricing/http"
	"github.com/nekogravitycat/stay-booking-backend/internal/property"
	propertyHttp "github.com/nekogravitycat/stay-booking-backend/internal/property/http"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
	unitHttp "github.com/nekogravitycat/stay-booking-backend/internal/unit/http"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/stay-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	UserService         user.Service
	PropertyService     property.Service
	UnitService         unit.Service
	PricingService      pricing.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for each module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	propertyHandler := propertyHttp.NewPropertyHandler(cfg.PropertyService, cfg.UserService)
	unitHandler := unitHttp.NewUnitHandler(cfg.UnitService, cfg.PropertyService, cfg.UserService)
	pricingHandler := pricingHttp.NewPeakRateHandler(cfg.PricingService, cfg.UnitService, cfg.UserService)
	availHandler := availHttp.NewAvailabilityHandler(cfg.AvailabilityService, cfg.UnitService, cfg.UserService)
	bookingHandler := bookingHttp.NewBookingHandler(cfg.BookingService, cfg.UserService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		propertyHttp.RegisterRoutes(v1, propertyHandler, authMiddleware)
		unitHttp.RegisterRoutes(v1, unitHandler, authMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler, authMiddleware)
		availHttp.RegisterRoutes(v1, availHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
