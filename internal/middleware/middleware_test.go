package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/givebridge/givebridge-backend/internal/config"
	"github.com/givebridge/givebridge-backend/internal/models"
	"github.com/givebridge/givebridge-backend/internal/utils"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiresIn = 3600
	cfg.Server.AllowedHosts = []string{"localhost:3000"}
	return cfg
}

func authTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.MustGet("userID").(primitive.ObjectID).Hex(),
			"role":   c.GetString("userRole"),
		})
	})
	router.GET("/ngo-only", JWTAuthMiddleware(cfg), RequireRole(models.RoleNGO), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	cfg := testConfig()
	userID := primitive.NewObjectID()
	token, err := utils.GenerateJWT(userID.Hex(), models.RoleDonor, cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authTestRouter(cfg).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
	assert.Contains(t, w.Body.String(), models.RoleDonor)
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	cfg := testConfig()
	router := authTestRouter(cfg)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()
	router := authTestRouter(cfg)

	donorToken, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), models.RoleDonor, cfg)
	require.NoError(t, err)
	ngoToken, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), models.RoleNGO, cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ngo-only", nil)
	req.Header.Set("Authorization", "Bearer "+donorToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/ngo-only", nil)
	req.Header.Set("Authorization", "Bearer "+ngoToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
