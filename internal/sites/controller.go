package sites

import (
	"net/http"
	"strconv"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/middleware"
	"opshub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// GetSites lists all sites, or only active ones with ?status=active.
func (ctrl *Controller) GetSites(c *gin.Context) {
	var (
		sites []SiteResponse
		err   error
	)
	if c.Query("status") == StatusActive {
		sites, err = ctrl.service.GetActiveSites(c.Request.Context())
	} else {
		sites, err = ctrl.service.GetAllSites(c.Request.Context())
	}
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Sites retrieved successfully", sites)
}

func (ctrl *Controller) GetMySites(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	sites, err := ctrl.service.GetSitesByIDs(c.Request.Context(), principal.SiteIDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Sites retrieved successfully", sites)
}

func (ctrl *Controller) GetSiteByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid site ID", nil, nil)
		return
	}

	site, err := ctrl.service.GetSiteByID(c.Request.Context(), uint(id))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Site retrieved successfully", site)
}

func (ctrl *Controller) GetSitesByLocation(c *gin.Context) {
	sites, err := ctrl.service.GetSitesByLocation(c.Request.Context(), c.Param("location"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Sites retrieved successfully", sites)
}

func (ctrl *Controller) GetSitesByIDs(c *gin.Context) {
	var req SitesByIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	sites, err := ctrl.service.GetSitesByIDs(c.Request.Context(), req.IDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Sites retrieved successfully", sites)
}

// CreateSite is restricted to admins by the router.
func (ctrl *Controller) CreateSite(c *gin.Context) {
	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	site, err := ctrl.service.CreateSite(c.Request.Context(), &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusCreated, "Site created successfully", site)
}
