package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	stderrors "storefront-client/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware_GenerateID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		assert.Equal(t, GetRequestID(c), RequestIDFromContext(c.Request.Context()))
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDMiddleware_UseProvidedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware(zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	providedID := uuid.New().String()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, providedID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, providedID, w.Header().Get(RequestIDHeader))
}

func newIdempotentRouter(store ReplayStore, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	router := gin.New()
	router.Use(SessionMiddleware(time.Hour))
	router.Use(RequestIDMiddleware(logger))
	router.Use(IdempotencyMiddleware(store, logger, time.Minute))
	router.POST("/cart", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
	})
	router.POST("/broken", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusBadGateway, gin.H{"error": "UpstreamDown"})
	})
	router.GET("/view", func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func sendWithRequestID(router *gin.Engine, method, path, sessionID, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(SessionHeader, sessionID)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Close()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	requestID := uuid.New().String()
	first := sendWithRequestID(router, "POST", "/cart", "s1", requestID)
	second := sendWithRequestID(router, "POST", "/cart", "s1", requestID)

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusAccepted, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(ReplayHeader))
	assert.Empty(t, first.Header().Get(ReplayHeader))
}

func TestIdempotencyMiddleware_ScopedToSession(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Close()
	calls := 0
	router := newIdempotentRouter(store, &calls)

	sendWithRequestID(router, "POST", "/cart", "s1", "retry-1")
	sendWithRequestID(router, "POST", "/cart", "s2", "retry-1")

	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_PassThrough(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		requestID string
	}{
		{name: "reads", method: "GET", path: "/view", requestID: "same-id"},
		{name: "writes without a client request id", method: "POST", path: "/cart"},
		{name: "failed writes are not stored", method: "POST", path: "/broken", requestID: "same-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryReplayStore(time.Minute)
			defer store.Close()
			calls := 0
			router := newIdempotentRouter(store, &calls)

			sendWithRequestID(router, tt.method, tt.path, "s1", tt.requestID)
			sendWithRequestID(router, tt.method, tt.path, "s1", tt.requestID)

			assert.Equal(t, 2, calls)
			assert.Zero(t, store.Len())
		})
	}
}

func TestMemoryReplayStore_Expiry(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "expired", Replay{Status: http.StatusAccepted, Body: []byte("x")}, -time.Second))
	require.NoError(t, store.Save(ctx, "live", Replay{Status: http.StatusAccepted, Body: []byte("y")}, time.Minute))

	_, found, err := store.Load(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, found)

	replay, found, err := store.Load(ctx, "live")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "y", string(replay.Body))

	store.Close()
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(time.Hour))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	sessionID := w.Body.String()
	_, err := uuid.Parse(sessionID)
	require.NoError(t, err)
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"="+sessionID)
}

func TestSessionMiddleware_ReusesHeaderAndCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware(time.Hour))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(SessionHeader, "from-header")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "from-header", w.Body.String())
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	req = httptest.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "from-cookie", w.Body.String())
}

func TestErrorHandler_StandardError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler(zap.NewNop()))
	router.GET("/stale", func(c *gin.Context) {
		_ = c.Error(stderrors.NewSuperseded(3))
	})
	router.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/stale", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Superseded"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"InternalError"`)
}

func TestRecoveryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RecoveryHandler(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware())
	router.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/api", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
