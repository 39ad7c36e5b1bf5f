package sites

import (
	"opshub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSiteRoutes registers the site endpoints behind authRequired.
func SetupSiteRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) {
	sites := rg.Group("/sites", authRequired)
	{
		sites.GET("", controller.GetSites)
		sites.POST("", middleware.RequireAdmin(), controller.CreateSite)
		sites.GET("/me", controller.GetMySites)
		sites.GET("/:id", controller.GetSiteByID)
		sites.GET("/location/:location", controller.GetSitesByLocation)
		sites.POST("/by-ids", controller.GetSitesByIDs)
	}
}
