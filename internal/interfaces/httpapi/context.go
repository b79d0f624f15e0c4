package httpapi

import (
	"context"

	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	paramsContextKey    contextKey = "request_params"
	requestInfoKey      contextKey = "request_info"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withParams(ctx context.Context, p params) context.Context {
	return context.WithValue(ctx, paramsContextKey, p)
}

func paramsFromContext(ctx context.Context) params {
	p, _ := ctx.Value(paramsContextKey).(params)
	return p
}

// requestInfo is created by RequestLogging and filled in by the dispatcher once the route is known.
type requestInfo struct {
	id    string
	route string
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey, info)
}

func requestInfoFromContext(ctx context.Context) *requestInfo {
	info, _ := ctx.Value(requestInfoKey).(*requestInfo)
	return info
}
