package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/anshmittal0811/Royal-Commerce/internal/platform/api"
	"github.com/anshmittal0811/Royal-Commerce/internal/platform/rpc"
)

// respondClientError translates a downstream client error into the
// gateway's response. Business rejections keep their status; transport
// failures and open circuits surface as 502.
func respondClientError(w http.ResponseWriter, log *zap.Logger, err error) {
	var callErr *rpc.CallError
	switch {
	case errors.Is(err, rpc.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, rpc.ErrConflict):
		api.WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &callErr):
		log.Error("downstream call failed", zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "a dependent service is unavailable")
	default:
		log.Error("gateway error", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
