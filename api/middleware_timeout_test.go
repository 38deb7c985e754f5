package api

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutMiddlewarePassThrough(t *testing.T) {
	handler := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestTimeoutMiddlewareDeadline(t *testing.T) {
	release := make(chan struct{})
	handler := TimeoutMiddleware(20*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		// writes after the deadline response must not reach the client
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("too late"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.Contains(t, rr.Body.String(), "Request timeout")

	close(release)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.NotContains(t, rr.Body.String(), "too late")
}

func TestTimeoutMiddlewareHandlerGoroutineExits(t *testing.T) {
	handler := TimeoutMiddleware(10*time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	}
	time.Sleep(50 * time.Millisecond)
	after := runtime.NumGoroutine()

	// handlers unblock on the canceled context and send on the buffered
	// channel without a receiver, so nothing accumulates
	assert.LessOrEqual(t, after, before+2)
}

func TestTimeoutMiddlewareHandlerWinsRace(t *testing.T) {
	handler := TimeoutMiddleware(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rr.Code)
}
