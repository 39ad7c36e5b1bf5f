package middleware

import (
	"net/http"
	"strings"

	"opshub/internal/shared/config"
	"opshub/internal/shared/security"
	"opshub/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the *security.Principal.
const PrincipalKey = "principal"

// TokenParser is the part of the token service the request filter needs.
type TokenParser interface {
	Parse(token string) (*security.Claims, error)
}

// Authenticate resolves the bearer token, if any, into a principal. It never
// rejects: anonymous requests continue without a principal.
func Authenticate(tokens TokenParser, cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolvePrincipal(c, tokens, cfg)
		c.Next()
	}
}

// JWTAuth resolves the bearer token and rejects the request with 401 when no
// valid access token is present.
func JWTAuth(tokens TokenParser, cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if resolvePrincipal(c, tokens, cfg) == nil {
			response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "authentication required", nil, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func resolvePrincipal(c *gin.Context, tokens TokenParser, cfg config.JWTConfig) *security.Principal {
	// Drop whatever an earlier handler left behind before deciding.
	setPrincipal(c, nil)

	token, ok := bearerToken(c.GetHeader(cfg.Header), cfg.Prefix)
	if !ok {
		return nil
	}

	claims, err := tokens.Parse(token)
	if err != nil || claims.Kind != security.AccessToken {
		return nil
	}

	principal := claims.Principal()
	setPrincipal(c, principal)
	return principal
}

func setPrincipal(c *gin.Context, p *security.Principal) {
	c.Set(PrincipalKey, p)
	c.Request = c.Request.WithContext(security.WithPrincipal(c.Request.Context(), p))
}

func bearerToken(header, prefix string) (string, bool) {
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// GetPrincipal returns the authenticated caller for this request.
func GetPrincipal(c *gin.Context) (*security.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := value.(*security.Principal)
	return p, ok && p != nil
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "authentication required", nil, nil)
			c.Abort()
			return
		}

		if !principal.HasRole(requiredRoles...) {
			response.RespondJSON(c, response.StatusError, http.StatusForbidden, "insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles("admin")
}
