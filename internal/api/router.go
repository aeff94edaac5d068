package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quarterlane/networking-api/internal/api/handler"
	"github.com/quarterlane/networking-api/internal/api/middleware"
	"github.com/quarterlane/networking-api/internal/core/service"
	mongodb "github.com/quarterlane/networking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quarterlane/networking-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("networking"))

	// --- Dependencies ---
	employeeRepo := mongodb.NewEmployeeRepository(db)
	selectionRepo := mongodb.NewSelectionRepository(db)
	accountRepo := mongodb.NewAccountRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	rosterService := service.NewRosterService(employeeRepo, selectionRepo, log)
	selectionService := service.NewSelectionService(selectionRepo, employeeRepo, log)
	accountService := service.NewAccountService(accountRepo, sessionStore, jwtSecret, sessionTTL, log)

	rosterHandler := handler.NewRosterHandler(rosterService)
	selectionHandler := handler.NewSelectionHandler(selectionService)
	authHandler := handler.NewAuthHandler(accountService)

	e.Use(middleware.Session(accountService))

	// --- Roster ---
	e.GET("/getEmployee", rosterHandler.List)
	e.GET("/getLocations", rosterHandler.Locations)
	e.POST("/upload", rosterHandler.Upload)
	e.POST("/updateEmployee", rosterHandler.Update)
	e.DELETE("/deleteAll", rosterHandler.DeleteAll)
	e.DELETE("/deleteByUsernameAndLocation", rosterHandler.DeleteByUserAndLocation)

	// --- Selections ---
	e.POST("/chooseAndStoreEmployees", selectionHandler.Choose)
	e.GET("/getListedEmployee", selectionHandler.ListByQuarter)
	e.GET("/getDistinctQuarters", selectionHandler.Quarters)
	e.DELETE("/deleteAllNetworking", selectionHandler.DeleteAll)

	// --- Accounts ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.POST("/get_fullname", authHandler.FullName)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
