package routes

import (
	"tallerpro/internal/adapter/http/handlers"
	"tallerpro/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
	PathUsers  = "/users"
)

func addPublicRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, statusHandler *handlers.StatusHandler) {
	rg.POST("/login", authHandler.Login)
	rg.GET("/statuses", statusHandler.ListStatuses)
}

func addSessionRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, emailHandler *handlers.EmailHandler) {
	rg.GET("/session", authHandler.Session)
	rg.POST("/send-email", emailHandler.SendEmail)
}

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, ledgerHandler *handlers.LedgerHandler) {
	// Flat endpoints kept for the existing front-end.
	rg.POST("/create-order", orderHandler.CreateOrder)
	rg.GET("/list-orders", orderHandler.ListOrders)
	rg.POST("/update-order-status", orderHandler.UpdateOrderStatus)

	orders := rg.Group(PathOrders)
	{
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id/estimate", orderHandler.UpdateEstimate)
		orders.POST("/:id/deposits", ledgerHandler.RecordDeposit)
		orders.GET("/:id/events", ledgerHandler.ListEvents)
		orders.GET("/:id/transactions", ledgerHandler.ListTransactions)
	}
}

func addUserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler) {
	rg.GET("/list-users", userHandler.ListUsers)
	rg.POST("/create-user", middleware.RequireUserManager(), userHandler.CreateUser)

	users := rg.Group(PathUsers, middleware.RequireUserManager())
	{
		users.PATCH("/:id/active", userHandler.SetActive)
	}
}
