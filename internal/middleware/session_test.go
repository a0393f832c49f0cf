package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rental_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})
	return r
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	w := httptest.NewRecorder()
	newSessionRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, util.SessionCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, w.Body.String())
	assert.True(t, cookies[0].HttpOnly)
}

func TestSessionMiddlewareReusesCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: util.SessionCookie, Value: "abc"})
	w := httptest.NewRecorder()
	newSessionRouter().ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddlewareQueryWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami?session=fromquery", nil)
	req.AddCookie(&http.Cookie{Name: util.SessionCookie, Value: "abc"})
	w := httptest.NewRecorder()
	newSessionRouter().ServeHTTP(w, req)

	assert.Equal(t, "fromquery", w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "fromquery", cookies[0].Value)
}

func TestSessionFromQueryStaysForLaterRequests(t *testing.T) {
	r := newSessionRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami?session=abc", nil))
	require.Equal(t, "abc", w.Body.String())

	next := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, ck := range w.Result().Cookies() {
		next.AddCookie(ck)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, next)
	assert.Equal(t, "abc", w.Body.String())
}
