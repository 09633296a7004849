package routes

import (
	"table-order/controllers"
	"table-order/middleware"
	"table-order/repositories"
	"table-order/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, broker *services.EventBroker) {
	storeRepo := repositories.NewStoreRepository()
	tableRepo := repositories.NewTableRepository()
	menuRepo := repositories.NewMenuRepository()
	orderRepo := repositories.NewOrderRepository()

	validator := services.NewOrderValidationService(menuRepo)
	sequence := services.NewSequenceAllocator(orderRepo)
	orderService := services.NewOrderService(orderRepo, tableRepo, validator, sequence, broker)
	tableAuthService := services.NewTableAuthService(tableRepo)
	adminAuthService := services.NewAdminAuthService(storeRepo)

	authCtrl := controllers.NewAuthController(adminAuthService, tableAuthService)
	orderCtrl := controllers.NewOrderController(orderService)
	tableCtrl := controllers.NewTableController(tableAuthService)
	sseCtrl := controllers.NewSSEController(broker)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/admin/login", authCtrl.AdminLogin)
	router.POST("/auth/table/login", authCtrl.TableLogin)

	table := router.Group("/")
	table.Use(middleware.TableAuthMiddleware())
	{
		table.POST("/orders", orderCtrl.CreateOrder)
		table.GET("/orders", orderCtrl.GetOrders)
		table.GET("/events", sseCtrl.StreamOrders)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
		admin.POST("/tables/:number/close", tableCtrl.CloseSession)
	}
}
