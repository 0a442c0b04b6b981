package lambda

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/config"
	"storefront-api/internal/middleware"
	"storefront-api/pkg/server"
)

func TestHeaders_CaseInsensitive(t *testing.T) {
	h := Headers{"cookie": "a=1"}
	assert.Equal(t, "a=1", h.Get("Cookie"))
	assert.Equal(t, "", h.Get("Accept"))

	h.Set("Cookie", "b=2")
	assert.Len(t, h, 1)
	assert.Equal(t, "b=2", h["Cookie"])
}

func TestFromAPIGateway(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodPost,
		Path:                  "/api/login",
		Headers:               map[string]string{"content-type": "application/json"},
		MultiValueHeaders:     map[string][]string{"Cookie": {"a=1", "admin_session=tok"}},
		QueryStringParameters: map[string]string{"ip": "1.2.3.4"},
		PathParameters:        map[string]string{"filename": "cake.png"},
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"username":"admin"}`)),
		IsBase64Encoded:       true,
	}

	req, err := FromAPIGateway(event)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/login", req.Path)
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
	assert.Equal(t, "a=1; admin_session=tok", req.Cookie())
	assert.Equal(t, "1.2.3.4", req.Query("ip"))
	assert.Equal(t, "cake.png", req.Param("filename"))
	assert.Equal(t, `{"username":"admin"}`, string(req.Body))
}

func TestFromAPIGateway_LowercaseMultiValueCookie(t *testing.T) {
	req, err := FromAPIGateway(events.APIGatewayProxyRequest{
		HTTPMethod:        http.MethodGet,
		Path:              "/admin/api/orders",
		Headers:           map[string]string{"cookie": "theme=dark"},
		MultiValueHeaders: map[string][]string{"cookie": {"theme=dark", "admin_session=tok123"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "theme=dark; admin_session=tok123", req.Cookie())
	assert.Len(t, req.Headers, 1)

	d := middleware.Decide(req.Path, req.Headers)
	assert.True(t, d.Forwarded(), "session in a later cookie crumb must be seen, got %s", d.Action)
}

func TestFromAPIGateway_BadBase64(t *testing.T) {
	_, err := FromAPIGateway(events.APIGatewayProxyRequest{Body: "%%%", IsBase64Encoded: true})
	assert.Error(t, err)
}

func TestToAPIGateway(t *testing.T) {
	t.Run("binary body with cookies", func(t *testing.T) {
		out := ToAPIGateway(&Response{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "image/png"},
			Cookies:    []string{"admin_session=tok; Path=/"},
			Body:       []byte{0x89, 'P', 'N', 'G'},
			Binary:     true,
		})

		assert.True(t, out.IsBase64Encoded)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'}), out.Body)
		assert.Equal(t, []string{"admin_session=tok; Path=/"}, out.MultiValueHeaders["Set-Cookie"])
	})

	t.Run("text body", func(t *testing.T) {
		out := ToAPIGateway(&Response{StatusCode: http.StatusOK, Body: []byte(`{"success":true}`)})
		assert.False(t, out.IsBase64Encoded)
		assert.Equal(t, `{"success":true}`, out.Body)
		assert.Nil(t, out.MultiValueHeaders)
	})
}

func TestServe(t *testing.T) {
	tests := []struct {
		name       string
		handler    HandlerFunc
		wantStatus int
		wantBody   string
	}{
		{
			name: "passes response through",
			handler: func(ctx context.Context, req *Request) (*Response, error) {
				return &Response{StatusCode: http.StatusTeapot, Body: []byte(req.Path)}, nil
			},
			wantStatus: http.StatusTeapot,
			wantBody:   "/api/orders",
		},
		{
			name: "handler error becomes 500",
			handler: func(ctx context.Context, req *Request) (*Response, error) {
				return nil, errors.New("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"boom"}`,
		},
		{
			name: "nil response becomes 500",
			handler: func(ctx context.Context, req *Request) (*Response, error) {
				return nil, nil
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"empty response"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Serve(tt.handler)(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodGet,
				Path:       "/api/orders",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, out.StatusCode)
			assert.Equal(t, tt.wantBody, out.Body)
		})
	}
}

func TestGinHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got *Request
	router := gin.New()
	router.Any("/api/image/:filename", GinHandler(func(ctx context.Context, req *Request) (*Response, error) {
		got = req
		return &Response{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "text/plain"},
			Cookies:    []string{"a=1", "b=2"},
			Body:       []byte("ok"),
		}, nil
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/image/cake.png?limit=5", strings.NewReader("payload"))
	req.Header.Add("Cookie", "a=1")
	req.Header.Add("Cookie", "admin_session=tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.NotNil(t, got)
	assert.Equal(t, "cake.png", got.Param("filename"))
	assert.Equal(t, "5", got.Query("limit"))
	assert.Equal(t, "payload", string(got.Body))
	assert.Equal(t, "a=1; admin_session=tok", got.Cookie())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, []string{"a=1", "b=2"}, w.Header().Values("Set-Cookie"))
}

func TestGinHandler_Error(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/fail", GinHandler(func(ctx context.Context, req *Request) (*Response, error) {
		return nil, errors.New("boom")
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
}

func testManager(loadErr error) (*ConnectionManager, *int) {
	loads := 0
	cm := NewConnectionManager()
	cm.loadConfig = func() (*config.Config, error) {
		loads++
		if loadErr != nil {
			return nil, loadErr
		}
		return &config.Config{
			Environment: "test",
			LogLevel:    "error",
			Storage:     config.StorageConfig{Type: "mock"},
		}, nil
	}
	return cm, &loads
}

func TestConnectionManager_GetContainer(t *testing.T) {
	cm, loads := testManager(nil)
	assert.False(t, cm.IsHealthy())

	first, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, cm.IsHealthy())

	second, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, *loads)

	require.NoError(t, cm.Cleanup())
	assert.False(t, cm.IsHealthy())

	third, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 1, *loads, "configuration is reused after cleanup")
}

func TestConnectionManager_LoadFailureIsRetried(t *testing.T) {
	cm, loads := testManager(errors.New("no env"))

	_, err := cm.GetContainer(context.Background())
	assert.Error(t, err)
	_, err = cm.GetContainer(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, *loads)
}

func TestConnectionManager_InitializeFailure(t *testing.T) {
	cm := NewConnectionManager()
	cm.newContainer = func(*config.Config) (*server.Container, error) {
		return nil, errors.New("bad storage")
	}

	err := cm.Initialize(&config.Config{})
	assert.Error(t, err)
	assert.False(t, cm.IsHealthy())
}

func TestConnectionManager_WrapRecyclesStaleContainer(t *testing.T) {
	cm, loads := testManager(nil)

	var seen []*server.Container
	h := cm.Wrap(func(c *server.Container) HandlerFunc {
		return func(ctx context.Context, req *Request) (*Response, error) {
			seen = append(seen, c)
			return &Response{StatusCode: http.StatusOK}, nil
		}
	})

	for i := 0; i < 2; i++ {
		resp, err := h(context.Background(), &Request{Method: http.MethodGet, Path: "/api/orders"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1], "a warm container is reused")

	cm.mu.Lock()
	cm.lastUsed = time.Now().Add(-staleAfter - time.Second)
	cm.mu.Unlock()
	assert.False(t, cm.IsHealthy())

	_, err := h(context.Background(), &Request{Method: http.MethodGet, Path: "/api/orders"})
	require.NoError(t, err)
	require.Len(t, seen, 3)
	assert.NotSame(t, seen[1], seen[2], "an idle container is rebuilt")
	assert.True(t, cm.IsHealthy())
	assert.Equal(t, 1, *loads)

	require.NoError(t, cm.Cleanup())
}

func TestConnectionManager_WrapInitFailure(t *testing.T) {
	cm, _ := testManager(errors.New("no env"))
	called := false
	h := cm.Wrap(func(c *server.Container) HandlerFunc {
		called = true
		return nil
	})

	_, err := h(context.Background(), &Request{})
	assert.Error(t, err)
	assert.False(t, called)
}
