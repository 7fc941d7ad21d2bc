// Package saga separates the two kinds of remote calls the order/payment
// saga makes. Required calls go through the rpc client and abort the
// operation on failure. Compensating calls (stock restore on remove/clear)
// go through Compensate, which can only ever log: a compensation failure
// must not block the primary operation.
package saga

import "go.uber.org/zap"

// Compensate runs a best-effort compensating action. The error, if any, is
// logged and swallowed; the accepted cost is stock drift, not a failed
// user operation.
func Compensate(log *zap.Logger, op string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn("compensating call failed, continuing",
			zap.String("op", op),
			zap.Error(err))
	}
}
