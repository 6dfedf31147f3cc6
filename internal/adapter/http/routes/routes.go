package routes

import (
	_ "tallerpro/docs"
	"tallerpro/internal/adapter/http/handlers"
	"tallerpro/internal/adapter/http/middleware"
	"tallerpro/internal/domain/status"
	"tallerpro/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the use cases the HTTP layer serves.
type Dependencies struct {
	Orders   usecase.IOrderUseCase
	Ledger   usecase.ILedgerUseCase
	Auth     usecase.IAuthUseCase
	Users    usecase.IUserUseCase
	Email    usecase.IEmailUseCase
	Statuses *status.Registry
	TaxRate  float64
}

// NewRouter builds the gin engine with every route mounted under /api.
func NewRouter(deps Dependencies, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	addPingRoutes(api)
	addPublicRoutes(api,
		handlers.NewAuthHandler(deps.Auth),
		handlers.NewStatusHandler(deps.Statuses),
	)

	secured := api.Group("", middleware.RequireSession(deps.Auth, log))
	addSessionRoutes(secured, handlers.NewAuthHandler(deps.Auth), handlers.NewEmailHandler(deps.Email))
	addOrderRoutes(secured,
		handlers.NewOrderHandler(deps.Orders, deps.TaxRate),
		handlers.NewLedgerHandler(deps.Ledger, deps.TaxRate, log),
	)
	addUserRoutes(secured, handlers.NewUserHandler(deps.Users))

	return router
}
