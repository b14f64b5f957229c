package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodorder/entity"
	"foodorder/pkg/apperr"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

type fakeSessions struct {
	active map[uint]string
	err    error
}

func (f *fakeSessions) VerifySession(_ context.Context, userID uint, sessionID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.active[userID] == sessionID, nil
}

func token(t *testing.T, userID uint, role, session string) string {
	t.Helper()
	tok, err := utils.GenerateToken(userID, role, session, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

type body struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": gin.H{"userId": utils.CurrentUserID(c), "role": utils.CurrentRole(c)}})
}

func TestAuthMiddleware(t *testing.T) {
	log, _ := test.NewNullLogger()
	sessions := &fakeSessions{active: map[uint]string{1: "s1", 2: "s2"}}
	r := gin.New()
	r.Use(ErrorHandler(log))
	r.GET("/any", AuthMiddleware(secret, sessions), whoami)
	r.GET("/owner", AuthMiddleware(secret, sessions, entity.RoleOwner), whoami)

	cases := []struct {
		name   string
		path   string
		header string
		status int
		errMsg string
	}{
		{"no header", "/any", "", http.StatusUnauthorized, "missing or invalid token"},
		{"not bearer", "/any", "Token abc", http.StatusUnauthorized, "missing or invalid token"},
		{"garbage", "/any", "Bearer abc", http.StatusUnauthorized, "invalid token"},
		{"signed elsewhere", "/any", "Bearer " + mustToken(1, entity.RoleCustomer, "s1", "other"), http.StatusUnauthorized, "invalid token"},
		{"stale session", "/any", "Bearer " + mustToken(1, entity.RoleCustomer, "old", secret), http.StatusUnauthorized, "session expired"},
		{"wrong role", "/owner", "Bearer " + mustToken(1, entity.RoleCustomer, "s1", secret), http.StatusForbidden, "forbidden"},
		{"ok", "/any", "Bearer " + mustToken(1, entity.RoleCustomer, "s1", secret), http.StatusOK, ""},
		{"owner ok", "/owner", "Bearer " + mustToken(2, entity.RoleOwner, "s2", secret), http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			b := decode(t, w)
			assert.Equal(t, tc.errMsg, b.Error)
		})
	}
}

func mustToken(userID uint, role, session, key string) string {
	tok, err := utils.GenerateToken(userID, role, session, key, time.Hour)
	if err != nil {
		panic(err)
	}
	return tok
}

func TestAuthMiddlewareSessionStoreFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(ErrorHandler(log))
	r.GET("/any", AuthMiddleware(secret, &fakeSessions{err: errors.New("redis down")}), whoami)

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, 1, entity.RoleCustomer, "s1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w).Error)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestWSAuthMiddlewareQueryToken(t *testing.T) {
	r := gin.New()
	r.GET("/ws", WSAuthMiddleware(secret, nil), whoami)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing token", decode(t, w).Error)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token(t, 4, entity.RoleOwner, ""), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":4,"role":"OWNER"}`, string(decode(t, w).Data))
}

func TestErrorHandler(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(ErrorHandler(log))
	r.GET("/api", func(c *gin.Context) { _ = c.Error(apperr.API("not enough points")) })
	r.GET("/conflict", func(c *gin.Context) { _ = c.Error(apperr.Conflict("email already registered")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("sql: connection refused")) })
	r.GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"ok": false})
		_ = c.Error(errors.New("late"))
	})

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/api", http.StatusBadRequest, "not enough points"},
		{"/conflict", http.StatusConflict, "email already registered"},
		{"/boom", http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.path)
		b := decode(t, w)
		assert.False(t, b.OK)
		assert.Equal(t, tc.msg, b.Error)
	}
	assert.Len(t, hook.AllEntries(), 1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, id, entry.Data["requestId"])
	assert.Equal(t, http.StatusNoContent, entry.Data["status"])

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r := gin.New()
	r.GET("/anon", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/user", func(c *gin.Context) {
		c.Set(utils.CtxUserID, uint(8))
		c.Next()
	}, rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("/anon"))
	assert.Equal(t, http.StatusOK, hit("/anon"))
	assert.Equal(t, http.StatusTooManyRequests, hit("/anon"))

	// user bucket is separate from the ip bucket
	assert.Equal(t, http.StatusOK, hit("/user"))

	rl.mu.Lock()
	assert.Len(t, rl.limiters, 2)
	for _, e := range rl.limiters {
		e.lastSeen = time.Now().Add(-time.Hour)
	}
	rl.mu.Unlock()
	rl.Cleanup(time.Minute)
	rl.mu.Lock()
	assert.Empty(t, rl.limiters)
	rl.mu.Unlock()
}

func TestMetricsAndCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}), Metrics())
	r.GET("/stores/:storeId", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/stores/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/stores/1", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
