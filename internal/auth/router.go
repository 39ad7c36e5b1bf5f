package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller   *Controller
	authRequired gin.HandlerFunc
	mockSSO      bool
}

// NewRouter creates a new auth router. The mock SSO endpoints are only
// registered when mockSSO is set.
func NewRouter(controller *Controller, authRequired gin.HandlerFunc, mockSSO bool) *Router {
	return &Router{
		controller:   controller,
		authRequired: authRequired,
		mockSSO:      mockSSO,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup, handlers ...gin.HandlerFunc) {
	auth := rg.Group("/auth", handlers...)
	{
		auth.POST("/register", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.RefreshToken)
		auth.POST("/forgot-password", authRouter.controller.ForgotPassword)
		auth.POST("/reset-password", authRouter.controller.ResetPassword)
		auth.POST("/logout", authRouter.controller.Logout)

		if authRouter.mockSSO {
			auth.POST("/sso/mock", authRouter.controller.MockSSO)
			auth.GET("/mock/users", authRouter.controller.MockUsers)
		}

		auth.GET("/me", authRouter.authRequired, authRouter.controller.GetMe)
	}
}
