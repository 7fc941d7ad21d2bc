package http

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/identity"
)

// RequestIDMiddleware tags every request with an X-Request-ID, generating
// one when the caller did not supply it.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", w.Header().Get("X-Request-ID")))
		})
	}
}

// callerID pulls the authenticated user out of the request context. The
// identity headers are stamped by the auth layer in front of the gateway;
// requests without them are rejected here.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		api.WriteError(w, http.StatusUnauthorized, "missing user authentication")
		return 0, false
	}
	return id.UserID, true
}
