package middleware

import (
	"crypto/subtle"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const tokenHeader = "X-Gateway-Token"

// GatewayAuth verifies the shared secret the messaging gateway sends with
// every webhook call. An empty configured secret disables the check, which
// is only sensible for local development.
func GatewayAuth(secret string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if secret == "" {
				next(ctx)
				return
			}

			token := ctx.Request.Header.Peek(tokenHeader)
			if subtle.ConstantTimeCompare(token, []byte(secret)) != 1 {
				logger.Warn("gateway token mismatch", zap.String("remote", ctx.RemoteAddr().String()))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			next(ctx)
		}
	}
}
