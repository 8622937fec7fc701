package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"atrium/internal/domain"
	"atrium/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, _ := jwtService.GenerateToken(42, domain.RoleSafety)

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "role": actor.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"role":3}`, w.Body.String())
}

func TestJWTAuth_QueryToken(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	token, _ := jwtService.GenerateToken(7, domain.RoleHR)

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/ws", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_Rejections(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	foreign, _ := jwt.New("other-secret", time.Hour).GenerateToken(1, domain.RoleAdmin)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{name: "missing", header: "", code: "AUTH_HEADER_MISSING"},
		{name: "basic", header: "Basic dGVzdA==", code: "INVALID_AUTH_FORMAT"},
		{name: "empty bearer", header: "Bearer   ", code: "INVALID_AUTH_FORMAT"},
		{name: "garbage", header: "Bearer invalid-jwt-here", code: "INVALID_TOKEN"},
		{name: "wrong secret", header: "Bearer " + foreign, code: "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.Use(JWTAuth(jwtService))
			router.GET("/protected", func(c *gin.Context) {
				t.Fatal("handler should not be reached")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		role domain.Role
		want int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleHR, http.StatusOK},
		{domain.RoleSafety, http.StatusForbidden},
	}

	for _, tc := range cases {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			SetActor(c, domain.Actor{UserID: 1, Role: tc.role})
			c.Next()
		})
		router.Use(AdminOrHR())
		router.POST("/document-types", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/document-types", nil))
		assert.Equal(t, tc.want, w.Code, "role %s", tc.role)
	}
}

func TestErrorLoggerRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(ErrorLogger(logger))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestCORSAnswersPreflight(t *testing.T) {
	router := gin.New()
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	h := CORS([]string{"http://localhost:5173"}, router)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
