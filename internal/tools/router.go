package tools

import "github.com/gin-gonic/gin"

func SetupToolRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) {
	t := rg.Group("/tools", authRequired)
	{
		t.GET("", controller.List)
		t.POST("", controller.Create)
		t.PUT("/order", controller.Reorder)
		t.DELETE("/:id", controller.Delete)
	}
}
