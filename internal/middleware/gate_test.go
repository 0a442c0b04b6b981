package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieHeader(value string) http.Header {
	h := http.Header{}
	if value != "" {
		h.Set("Cookie", value)
	}
	return h
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want PathClass
	}{
		{"/", ClassPublic},
		{"/index.html", ClassPublic},
		{"/login.html", ClassPublic},
		{"/reject.html", ClassPublic},
		{"/assets/app.js", ClassPublic},
		{"/css/site.css", ClassPublic},
		{"/api/login", ClassPublic},
		{"/api/logout", ClassPublic},
		{"/api/orders", ClassPublic},
		{"/api/image/foo.png", ClassPublic},
		{"/api/page-image/hero.jpg", ClassPublic},
		{"/admin", ClassAdminPage},
		{"/admin/", ClassAdminPage},
		{"/admin/index.html", ClassAdminPage},
		{"/admin/orders/", ClassAdminPage},
		{"/admin/orders", ClassAdminPage},
		{"/admin/api/orders", ClassAdminAPI},
		{"/admin/api", ClassAdminAPI},
		{"/api/admin/products", ClassAdminAPI},
		{"/admin/app.js", ClassOther},
		{"/admin/style.css", ClassOther},
		{"/products.html", ClassOther},
		{"/api/loginx", ClassOther},
		{"/administrator", ClassOther},
		{"/admin.html", ClassOther},
		{"/Admin/", ClassOther},
		{"/ADMIN/api/orders", ClassOther},
		{"/assets/../admin/", ClassAdminPage},
		{"//admin//api/orders", ClassAdminAPI},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestDecidePublicPathsAlwaysForward(t *testing.T) {
	paths := []string{"/", "/login.html", "/reject.html", "/assets/logo.svg", "/api/login", "/api/orders"}
	cookies := []string{"", "admin_session=", "admin_session=abc", "other=1"}

	for _, p := range paths {
		for _, c := range cookies {
			d := Decide(p, cookieHeader(c))
			assert.True(t, d.Forwarded(), "path %q cookie %q", p, c)
			assert.Equal(t, ClassPublic, d.Class)
		}
	}
}

func TestDecideMissingCookie(t *testing.T) {
	t.Run("AdminAPI", func(t *testing.T) {
		d := Decide("/admin/api/orders", http.Header{})
		assert.Equal(t, JSONUnauthorized, d.Action)
		assert.Equal(t, http.StatusUnauthorized, d.StatusCode())
		require.NotNil(t, d.Failure)
		assert.Equal(t, "Authentication required", d.Failure.Error)
		assert.Equal(t, LoginPage, d.Failure.RedirectURL)
	})

	t.Run("AdminPage", func(t *testing.T) {
		d := Decide("/admin/", cookieHeader("theme=dark; cart=3"))
		assert.Equal(t, RedirectToLogin, d.Action)
		assert.Equal(t, http.StatusFound, d.StatusCode())
		assert.Equal(t, LoginPage, d.Location)
	})

	t.Run("NilHeaders", func(t *testing.T) {
		d := Decide("/admin/index.html", nil)
		assert.Equal(t, RedirectToLogin, d.Action)
	})
}

func TestDecideEmptyCookie(t *testing.T) {
	for _, c := range []string{"admin_session=", "admin_session=   ", "admin_session", "cart=1; admin_session= ; theme=x"} {
		t.Run(c, func(t *testing.T) {
			api := Decide("/admin/api/orders", cookieHeader(c))
			assert.Equal(t, JSONUnauthorized, api.Action)
			require.NotNil(t, api.Failure)
			assert.Equal(t, "Invalid session", api.Failure.Error)
			assert.Equal(t, RejectPage, api.Failure.RedirectURL)

			page := Decide("/admin/", cookieHeader(c))
			assert.Equal(t, RedirectToReject, page.Action)
			assert.Equal(t, RejectPage, page.Location)
		})
	}
}

func TestDecideAnyNonEmptyTokenForwards(t *testing.T) {
	for _, c := range []string{"admin_session=x", "admin_session=1700000000000-abc", "a=b;admin_session=not-a-real-token", "admin_session=a=b=c"} {
		assert.True(t, Decide("/admin/api/orders", cookieHeader(c)).Forwarded(), c)
		assert.True(t, Decide("/admin/", cookieHeader(c)).Forwarded(), c)
	}
}

func TestDecideUnclassifiedPathsForward(t *testing.T) {
	d := Decide("/admin/app.js", http.Header{})
	assert.True(t, d.Forwarded())
	assert.Equal(t, ClassOther, d.Class)
}

func TestSessionToken(t *testing.T) {
	value, present := SessionToken("a=1; admin_session=tok=en; b=2", SessionCookieName)
	assert.True(t, present)
	assert.Equal(t, "tok=en", value)

	_, present = SessionToken("xadmin_session=1", SessionCookieName)
	assert.False(t, present)

	value, present = SessionToken("admin_session", SessionCookieName)
	assert.True(t, present)
	assert.Empty(t, value)
}

func TestAccessGateMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	gate := NewAccessGate("", logger)

	router := gin.New()
	router.Use(gate.Middleware())
	router.GET("/*path", func(c *gin.Context) {
		c.String(http.StatusOK, "protected")
	})

	t.Run("JSONUnauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"error": "Authentication required", "redirectUrl": "/login.html"}, body)
	})

	t.Run("Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.Header.Set("Cookie", "admin_session=")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/reject.html", w.Header().Get("Location"))
	})

	t.Run("Forward", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.Header.Set("Cookie", "admin_session=abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "protected", w.Body.String())
	})
}
