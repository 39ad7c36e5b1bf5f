package users

import (
	"net/http"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/middleware"
	"opshub/internal/shared/utils/response"
	"opshub/internal/sites"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	sites     sites.Service
	validator *validator.Validate
}

func NewController(service Service, siteService sites.Service) *Controller {
	return &Controller{
		service:   service,
		sites:     siteService,
		validator: validator.New(),
	}
}

func (ctrl *Controller) GetMe(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), principal)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "User retrieved successfully", profile)
}

func (ctrl *Controller) GetMySites(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	list, err := ctrl.sites.GetSitesByIDs(c.Request.Context(), principal.SiteIDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Sites retrieved successfully", list)
}

func (ctrl *Controller) UpdatePreferences(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	profile, err := ctrl.service.UpdatePreferences(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Preferences updated successfully", profile)
}
