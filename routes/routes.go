package routes

import (
	"github.com/gin-gonic/gin"

	"restock-backend/controllers"
	"restock-backend/middleware"
)

// Register wires all HTTP routes onto the router.
func Register(
	r *gin.Engine,
	detectionCtl *controllers.DetectionController,
	orderCtl *controllers.OrderController,
	userCtl *controllers.UserController,
	systemCtl *controllers.SystemController,
) {
	detections := r.Group("/detections")
	detections.Use(middleware.RateLimit())
	detections.POST("", detectionCtl.Ingest)
	detections.GET("/intents/:intent_id", detectionCtl.GetIntent)

	orders := r.Group("/orders")
	orders.POST("/decisions", orderCtl.Decide)
	orders.GET("/history", orderCtl.History)
	orders.GET("/:order_id", orderCtl.GetOrder)

	users := r.Group("/users")
	users.GET("/:user_id/preferences", userCtl.GetPreferences)
	users.PUT("/:user_id/preferences", userCtl.UpdatePreferences)

	r.GET("/catalog/products", systemCtl.ListProducts)

	system := r.Group("/system")
	system.GET("/health", systemCtl.Health)
	system.GET("/telemetry", systemCtl.Telemetry)
}
