package tools

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

func (ctrl *Controller) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	list, err := ctrl.service.List(c.Request.Context(), principal.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Tools retrieved successfully", list)
}

func (ctrl *Controller) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	tool, err := ctrl.service.Create(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusCreated, "Tool created successfully", tool)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid tool ID", nil, err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), principal.UserID, uint(id)); err != nil {
		response.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *Controller) Reorder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	var req ReorderToolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	list, err := ctrl.service.Reorder(c.Request.Context(), principal.UserID, req.ToolIDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Tools reordered successfully", list)
}
