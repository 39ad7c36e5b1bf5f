package auth

import (
	"log/slog"
	"net/http"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/middleware"
	"opshub/internal/shared/utils/response"
	"opshub/pkg/logger"

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

// bind decodes and validates the JSON body, writing the 400 itself on failure.
func (c *Controller) bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return false
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, response.StatusError, http.StatusBadRequest, "Validation failed", nil, err.Error())
		return false
	}
	return true
}

// Register godoc
// @Summary      Register new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "account"
// @Success      201 {object} response.StandardApiResponse{data=AuthResponse}
// @Failure      400 {object} response.StandardApiResponse
// @Router       /auth/register [post]
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusCreated, "User registered successfully", resp)
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "credentials"
// @Success      200 {object} response.StandardApiResponse{data=AuthResponse}
// @Failure      401 {object} response.StandardApiResponse
// @Router       /auth/login [post]
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Login successful", resp)
}

// MockSSO godoc
// @Summary      Mock SSO login (development only)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body MockSSORequest true "email"
// @Success      200 {object} response.StandardApiResponse{data=AuthResponse}
// @Router       /auth/sso/mock [post]
func (c *Controller) MockSSO(ctx *gin.Context) {
	var req MockSSORequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.MockSSO(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Login successful", resp)
}

func (c *Controller) MockUsers(ctx *gin.Context) {
	response.RespondSuccess(ctx, http.StatusOK, "Mock users retrieved successfully", MockUsers)
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "refresh token"
// @Success      200 {object} response.StandardApiResponse{data=AuthResponse}
// @Failure      401 {object} response.StandardApiResponse
// @Router       /auth/refresh [post]
func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Token refreshed successfully", resp)
}

// ForgotPassword always answers 200 so the response reveals nothing about the account.
func (c *Controller) ForgotPassword(ctx *gin.Context) {
	var req ForgotPasswordRequest
	if !c.bind(ctx, &req) {
		return
	}

	if err := c.service.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "If an account exists with this email, a password reset link has been sent.", nil)
}

func (c *Controller) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if !c.bind(ctx, &req) {
		return
	}

	if err := c.service.ResetPassword(ctx.Request.Context(), &req); err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "Password reset successful. You can now login with your new password.", nil)
}

// Logout is client-side only: tokens stay valid until they expire.
func (c *Controller) Logout(ctx *gin.Context) {
	if principal, ok := middleware.GetPrincipal(ctx); ok {
		logger.GetDefault().InfoContext(ctx.Request.Context(), "User logged out", slog.Uint64("user_id", uint64(principal.UserID)))
	}
	response.RespondSuccess(ctx, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		response.RespondError(ctx, apperrors.Unauthorized("authentication required"))
		return
	}
	response.RespondSuccess(ctx, http.StatusOK, "User data retrieved successfully", principal)
}
