package users

import "github.com/gin-gonic/gin"

// SetupUserRoutes registers the /users/me endpoints and returns the group so
// other modules can hang routes off it.
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) *gin.RouterGroup {
	me := rg.Group("/users/me", authRequired)
	{
		me.GET("", controller.GetMe)
		me.GET("/sites", controller.GetMySites)
		me.PUT("/preferences", controller.UpdatePreferences)
	}
	return me
}
