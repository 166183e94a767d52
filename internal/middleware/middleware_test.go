package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "segredo-de-teste"

func init() { gin.SetMode(gin.TestMode) }

func token(t *testing.T, username, perfil string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"perfil":   perfil,
		"exp":      exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protegido() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/eu", JWTAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, Sessao(c))
	})
	r.GET("/admin", JWTAuth(secret), RequirePerfil("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := protegido()

	w := get(r, "/eu", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = get(r, "/eu", token(t, "ana", "comum", time.Now().Add(-time.Minute)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/eu", token(t, "ana", "comum", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"ana","perfil":"comum"}`, w.Body.String())
}

func TestRequirePerfil(t *testing.T) {
	r := protegido()

	w := get(r, "/admin", token(t, "ana", "comum", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/admin", token(t, "root", "admin", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLimitador(t *testing.T) {
	agora := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := newLimitador(2, time.Minute)
	l.now = func() time.Time { return agora }

	ok, _ := l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.permitir("10.0.0.1")
	assert.False(t, ok)

	ok, _ = l.permitir("10.0.0.2")
	assert.True(t, ok, "limits are per IP")

	agora = agora.Add(61 * time.Second)
	ok, _ = l.permitir("10.0.0.1")
	assert.True(t, ok, "new window")
}

func TestRequestID_Propagado(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
