package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/warbler-api/internal/constants"
)

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		want   uint64
		wantOK bool
	}{
		{"uint64", uint64(7), 7, true},
		{"uint", uint(7), 7, true},
		{"int", 7, 7, true},
		{"negative int", -1, 0, false},
		{"string", "7", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Set(constants.ContextKeyUserID, tt.value)

			got, ok := GetUserID(c)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)
}

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, uint64(42))
		if err := session.Save(); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func echoUserID(c *gin.Context) {
	userID, ok := GetUserID(c)
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "ok": ok})
}

func TestRequireAuth(t *testing.T) {
	r := newSessionRouter()
	r.GET("/private", RequireAuth(), echoUserID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42, "ok": true}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := newSessionRouter()
	r.GET("/public", OptionalAuth(), echoUserID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 0, "ok": false}`, w.Body.String())
}

func TestNoCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NoCache())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", w.Header().Get("Pragma"))
	assert.Equal(t, "0", w.Header().Get("Expires"))
}
