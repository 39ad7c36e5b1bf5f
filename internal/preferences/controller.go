package preferences

import (
	"context"
	"net/http"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/middleware"
	"opshub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Get(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	prefs, err := ctrl.service.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Preferences retrieved successfully", prefs)
}

func (ctrl *Controller) Replace(c *gin.Context) {
	ctrl.write(c, ctrl.service.Replace, "Preferences updated successfully")
}

func (ctrl *Controller) Merge(c *gin.Context) {
	ctrl.write(c, ctrl.service.Merge, "Preferences merged successfully")
}

func (ctrl *Controller) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), principal.UserID); err != nil {
		response.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *Controller) write(c *gin.Context, apply func(ctx context.Context, userID uint, values map[string]interface{}) (*UserPreferences, error), message string) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var values map[string]interface{}
	if err := c.ShouldBindJSON(&values); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	prefs, err := apply(c.Request.Context(), principal.UserID, values)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, message, prefs)
}

func SetupPreferenceRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) {
	p := rg.Group("/users/me/preferences/v2", authRequired)
	{
		p.GET("", controller.Get)
		p.PUT("", controller.Replace)
		p.PATCH("", controller.Merge)
		p.DELETE("", controller.Delete)
	}
}
