package dashboards

import (
	"net/http"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/middleware"
	"opshub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type SaveRequest struct {
	DashboardIDs []string `json:"dashboardIds" binding:"required"`
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Available(c *gin.Context) {
	response.RespondSuccess(c, http.StatusOK, "Dashboards retrieved successfully", ctrl.service.Available())
}

func (ctrl *Controller) GetMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	cfg, err := ctrl.service.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Dashboard configuration retrieved successfully", cfg)
}

func (ctrl *Controller) SaveMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cfg, err := ctrl.service.Save(c.Request.Context(), principal.UserID, req.DashboardIDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Dashboard configuration saved successfully", cfg)
}

func SetupDashboardRoutes(rg *gin.RouterGroup, controller *Controller, authRequired gin.HandlerFunc) {
	d := rg.Group("/dashboards", authRequired)
	{
		d.GET("/available", controller.Available)
		d.GET("/me", controller.GetMine)
		d.PUT("/me", controller.SaveMine)
	}
}
