package middleware

import (
	"net/http"
	"time"

	"github.com/Varun5711/bookmarkd/internal/logger"
	"github.com/mssola/user_agent"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func recorderFor(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w}
}

// AccessLog writes one entry per request.
func AccessLog(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := recorderFor(w)

			next.ServeHTTP(rec, r)

			ua := user_agent.New(r.UserAgent())
			browser, _ := ua.Browser()

			entry := log.With(
				"request_id", GetRequestID(r.Context()),
				"ip", ClientIP(r),
				"status", rec.Status(),
				"bytes", rec.bytes,
				"duration", time.Since(start),
				"browser", browser,
				"os", ua.OS(),
				"bot", ua.Bot(),
			)

			if rec.Status() >= http.StatusInternalServerError {
				entry.Error("%s %s", r.Method, r.URL.Path)
				return
			}
			entry.Info("%s %s", r.Method, r.URL.Path)
		})
	}
}
