package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// timeoutWriter wraps the response writer so the handler goroutine cannot
// write anymore once the deadline response has gone out.
type timeoutWriter struct {
	mu         sync.Mutex
	w          http.ResponseWriter
	timedOut   bool
	wroteReply bool
}

func (tw *timeoutWriter) Header() http.Header {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return http.Header{}
	}
	return tw.w.Header()
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return len(b), nil
	}
	tw.wroteReply = true
	return tw.w.Write(b)
}

func (tw *timeoutWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return
	}
	tw.wroteReply = true
	tw.w.WriteHeader(statusCode)
}

// markTimedOut claims the writer for the timeout response. Returns false when
// the handler already started writing, in which case the response on the wire
// is the handler's and the deadline branch stays silent.
func (tw *timeoutWriter) markTimedOut() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteReply {
		return false
	}
	tw.timedOut = true
	return true
}

// TimeoutMiddleware adds request timeout to prevent long-running requests
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)
			tw := &timeoutWriter{w: w}

			// buffered so the handler goroutine can exit even after the
			// deadline branch stopped listening
			done := make(chan struct{}, 1)
			go func() {
				next.ServeHTTP(tw, r)
				done <- struct{}{}
			}()

			select {
			case <-done:
				// Request completed successfully
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded && tw.markTimedOut() {
					zap.S().Warnw("Request timeout",
						"path", r.URL.Path,
						"method", r.Method,
						"timeout", timeout)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusRequestTimeout)
					w.Write([]byte(`{"error": "Request timeout", "message": "The request took too long to process"}`))
				}
			}
		})
	}
}
