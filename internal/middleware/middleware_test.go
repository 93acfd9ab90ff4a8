package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSPreflight(t *testing.T) {
	resp := httptest.NewRecorder()
	CORS(ok).ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, "/api/widgets", nil))

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPassesThrough(t *testing.T) {
	resp := httptest.NewRecorder()
	CORS(ok).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/topics", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiterPerClient(t *testing.T) {
	h := NewRateLimiter(1, 2).Handler(ok)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/widgets", nil)
		req.RemoteAddr = addr
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)
		return resp.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000"), "other clients keep their own budget")
}

func TestRateLimiterKeepsNewClientAcrossEviction(t *testing.T) {
	l := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, l.allow("10.0.0.1", now))
	assert.False(t, l.allow("10.0.0.1", now), "bucket survives the eviction run of its own insert")

	// A new client triggers eviction but must not reset active ones.
	assert.True(t, l.allow("10.0.0.2", now))
	assert.False(t, l.allow("10.0.0.1", now))
	assert.Len(t, l.clients, 2)

	later := now.Add(l.idle + time.Second)
	assert.True(t, l.allow("10.0.0.3", later))
	assert.Len(t, l.clients, 1, "idle clients are evicted")
}
