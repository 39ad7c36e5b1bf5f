package notifications

import (
	"net/http"
	"strconv"

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

func (ctrl *Controller) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid page", nil, err.Error())
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid size", nil, err.Error())
		return
	}

	result, err := ctrl.service.List(c.Request.Context(), principal.UserID, page, size)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Notifications retrieved successfully", result)
}

func (ctrl *Controller) MarkAsRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid notification ID", nil, err.Error())
		return
	}

	n, err := ctrl.service.MarkAsRead(c.Request.Context(), principal.UserID, uint(id))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Notification marked as read", n)
}

func (ctrl *Controller) UnreadCount(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.RespondError(c, apperrors.Unauthorized("authentication required"))
		return
	}

	count, err := ctrl.service.UnreadCount(c.Request.Context(), principal.UserID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondSuccess(c, http.StatusOK, "Unread count retrieved successfully", UnreadCountResponse{Count: count})
}
