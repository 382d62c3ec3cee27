package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/stay-booking-backend/internal/api"
	"github.com/nekogravitycat/stay-booking-backend/internal/auth"
	"github.com/nekogravitycat/stay-booking-backend/internal/availability"
	"github.com/nekogravitycat/stay-booking-backend/internal/booking"
	"github.com/nekogravitycat/stay-booking-backend/internal/pricing"
	"github.com/nekogravitycat/stay-booking-backend/internal/property"
	"github.com/nekogravitycat/stay-booking-backend/internal/unit"
	"github.com/nekogravitycat/stay-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Property Module
	propertyRepo := property.NewPgxRepository(cfg.DBPool)
	propertyService := property.NewService(propertyRepo, userService)

	// Unit Module
	unitRepo := unit.NewPgxRepository(cfg.DBPool)
	unitService := unit.NewService(unitRepo, propertyService)

	// Pricing Module
	pricingRepo := pricing.NewPgxRepository(cfg.DBPool)
	pricingService := pricing.NewService(pricingRepo)

	// Availability Module
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, pricingService, availService, unitService, userService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		PropertyService:     propertyService,
		UnitService:         unitService,
		PricingService:      pricingService,
		AvailabilityService: availService,
		BookingService:      bookingService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
