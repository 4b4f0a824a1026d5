package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"mechanic-system/internal/controllers"
	"mechanic-system/internal/repositories"
	"mechanic-system/internal/services"
	"mechanic-system/pkg/config"
	"mechanic-system/pkg/middleware"
	"mechanic-system/pkg/service"
)

// InitRouter wires repositories, services and controllers together and
// registers every route group on the echo instance.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, cacheRepo repositories.CacheRepositoryInterface, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	cacheMW := middleware.NewResponseCacheMiddleware(cacheRepo, cfg.Cache.TicketListTTL, logger)
	rateLimitMW := middleware.NewRateLimitMiddleware(cacheRepo, cfg.RateLimit.AssignMechanicLimit, cfg.RateLimit.AssignMechanicWindow, logger)

	txManager := repositories.NewTxManager(dbConn)

	customerRepo := repositories.NewCustomerRepository(dbConn, logger)
	mechanicRepo := repositories.NewMechanicRepository(dbConn, logger)
	inventoryRepo := repositories.NewInventoryRepository(dbConn, logger)
	ticketRepo := repositories.NewServiceTicketRepository(dbConn, logger)

	customerService := services.NewCustomerService(customerRepo, ticketRepo, txManager, logger)
	mechanicService := services.NewMechanicService(mechanicRepo, txManager, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, txManager, logger)
	ticketService := services.NewServiceTicketService(ticketRepo, customerRepo, mechanicRepo, inventoryRepo, txManager, logger)

	customerCtrl := controllers.NewCustomerController(customerService, jwtSvc, logger)
	mechanicCtrl := controllers.NewMechanicController(mechanicService, logger)
	inventoryCtrl := controllers.NewInventoryController(inventoryService, logger)
	ticketCtrl := controllers.NewServiceTicketController(ticketService, logger)

	runCustomerRouter(e, customerCtrl)
	runMechanicRouter(e, mechanicCtrl)
	runInventoryRouter(e, inventoryCtrl, authMW)
	runServiceTicketRouter(e, ticketCtrl, authMW, cacheMW, rateLimitMW)
}
