package notifications

import "github.com/gin-gonic/gin"

func SetupNotificationRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) {
	n := rg.Group("/notifications", authRequired)
	{
		n.GET("", controller.List)
		n.GET("/unread-count", controller.UnreadCount)
		n.PUT("/:id/read", controller.MarkAsRead)
	}
}
