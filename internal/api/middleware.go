package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id on both request and response
const RequestIDHeader = "X-Request-ID"

// APIKeyHeader carries the client's API key
const APIKeyHeader = "X-API-Key"

type ctxKey int

const requestIDKey ctxKey = 0

// GetRequestID returns the request id stored by the RequestID middleware,
// or an empty string when none is present.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID assigns each request a UUID (honoring one supplied by the
// caller) and echoes it in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestLogger logs one structured line per request with the request id,
// method, path, status, and latency.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logrus.WithFields(logrus.Fields{
			"request_id": GetRequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"latency":    time.Since(start).String(),
			"remote":     r.RemoteAddr,
		}).Info("request completed")
	})
}

// authExempt paths skip the API key check: health probes and the generated
// API documentation.
func authExempt(path string) bool {
	if path == "/health" || strings.HasPrefix(path, "/health/") {
		return true
	}
	return path == "/docs" || strings.HasPrefix(path, "/openapi") || strings.HasPrefix(path, "/schemas")
}

// APIKeyAuth validates the X-API-Key header against the configured key.
// An empty configured key fails open with a warning so local development
// works without setup; deployments always set API_KEY.
func APIKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if key == "" {
				logrus.Warn("API_KEY is not set, skipping auth check")
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				writeError(w, newEnvelope(http.StatusUnauthorized, "UNAUTHORIZED",
					"Invalid or missing API key. Provide a valid key in the X-API-Key header.", nil))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes an envelope directly, for failures that happen before a
// request reaches huma (auth, unknown routes).
func writeError(w http.ResponseWriter, env *ErrorEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.GetStatus())
	_ = json.NewEncoder(w).Encode(env)
}

// NotFoundHandler answers unknown routes with the structured envelope so the
// connector never receives HTML.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, newEnvelope(http.StatusNotFound, "NOT_FOUND",
		"The requested endpoint does not exist.", nil))
}

// MethodNotAllowedHandler answers unsupported methods with the structured
// envelope.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, newEnvelope(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
		"HTTP method not allowed on this endpoint.", nil))
}
