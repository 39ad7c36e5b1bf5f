package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"opshub/internal/shared/config"
	"opshub/internal/shared/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtCfg = config.JWTConfig{
	Secret:     strings.Repeat("m", 32),
	AccessTTL:  time.Hour,
	RefreshTTL: 2 * time.Hour,
	Issuer:     "hub-smart-solutions",
	Header:     "Authorization",
	Prefix:     "Bearer ",
}

var sophie = security.Subject{
	UserID:  2,
	Email:   "sophie.martin@smartsolutions.fr",
	Name:    "Sophie Martin",
	Role:    "director",
	SiteIDs: []uint{1, 2, 3},
}

func setup(t *testing.T) (*gin.Engine, *security.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := security.NewTokenService(jwtCfg)
	require.NoError(t, err)

	engine := gin.New()
	engine.GET("/open", Authenticate(tokens, jwtCfg), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, p.Email)
	})
	engine.GET("/closed", JWTAuth(tokens, jwtCfg), func(c *gin.Context) {
		p := security.PrincipalFrom(c.Request.Context())
		c.String(http.StatusOK, p.Name)
	})
	engine.GET("/admin", JWTAuth(tokens, jwtCfg), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	engine.GET("/stale",
		func(c *gin.Context) {
			c.Set(PrincipalKey, &security.Principal{UserID: 99, Email: "stale@x.y"})
			c.Next()
		},
		Authenticate(tokens, jwtCfg),
		func(c *gin.Context) {
			_, ok := GetPrincipal(c)
			if ok {
				c.String(http.StatusOK, "leaked")
				return
			}
			c.String(http.StatusOK, "cleared")
		},
	)
	return engine, tokens
}

func get(engine *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_ValidAccessTokenSetsPrincipal(t *testing.T) {
	engine, tokens := setup(t)
	token, err := tokens.IssueAccess(sophie)
	require.NoError(t, err)

	rec := get(engine, "/open", "Bearer "+token)
	assert.Equal(t, sophie.Email, rec.Body.String())

	rec = get(engine, "/closed", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sophie Martin", rec.Body.String())
}

func TestAuthenticate_IgnoresBadHeaders(t *testing.T) {
	engine, tokens := setup(t)
	refresh, err := tokens.IssueRefresh(sophie)
	require.NoError(t, err)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer garbage", "Bearer " + refresh} {
		rec := get(engine, "/open", header)
		assert.Equal(t, "anonymous", rec.Body.String(), header)

		rec = get(engine, "/closed", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAuthenticate_ClearsPriorPrincipal(t *testing.T) {
	engine, _ := setup(t)

	rec := get(engine, "/stale", "Bearer invalid")
	assert.Equal(t, "cleared", rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	engine, tokens := setup(t)

	director, err := tokens.IssueAccess(sophie)
	require.NoError(t, err)
	rec := get(engine, "/admin", "Bearer "+director)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	marc := sophie
	marc.Role = "admin"
	admin, err := tokens.IssueAccess(marc)
	require.NoError(t, err)
	rec = get(engine, "/admin", "Bearer "+admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
