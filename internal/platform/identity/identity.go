package identity

import (
	"context"
	"net/http"
	"strconv"
)

// Header names set by the auth layer at the edge and forwarded on every
// internal call. Downstream services use them for authorization only; the
// saga logic treats them as opaque.
const (
	HeaderUserID = "X-USER-ID"
	HeaderEmail  = "X-USER-EMAIL"
	HeaderRole   = "X-USER-ROLE"
)

// Identity is the authenticated caller, carried per-request through the
// context. It is never stored globally.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

type ctxKey struct{}

func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// FromHeaders extracts an Identity from incoming request headers.
func FromHeaders(h http.Header) (Identity, bool) {
	rawID := h.Get(HeaderUserID)
	if rawID == "" {
		return Identity{}, false
	}
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, false
	}
	return Identity{
		UserID: userID,
		Email:  h.Get(HeaderEmail),
		Role:   h.Get(HeaderRole),
	}, true
}

// ApplyHeaders stamps the identity onto an outgoing request.
func ApplyHeaders(h http.Header, id Identity) {
	h.Set(HeaderUserID, strconv.FormatInt(id.UserID, 10))
	if id.Email != "" {
		h.Set(HeaderEmail, id.Email)
	}
	if id.Role != "" {
		h.Set(HeaderRole, id.Role)
	}
}

// Middleware lifts the identity headers into the request context. Requests
// without identity pass through untouched; handlers that require a caller
// reject them.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := FromHeaders(r.Header); ok {
			r = r.WithContext(NewContext(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
