package sessionctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey string

const (
	requestIDKey contextKey = "session_request_id"
	userIDKey    contextKey = "session_user_id"
	userEmailKey contextKey = "session_user_email"
	ipAddressKey contextKey = "session_ip_address"
	userAgentKey contextKey = "session_user_agent"
)

// WithRequestID attaches the request correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithUser attaches the authenticated account identity. Every protected
// operation reads the acting user from here rather than from any global.
func WithUser(ctx context.Context, userID snowflake.ID, email string) context.Context {
	if userID != 0 {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	if email != "" {
		ctx = context.WithValue(ctx, userEmailKey, email)
	}
	return ctx
}

// UserFromContext returns the acting user id and email, or (0, "") for an
// anonymous request.
func UserFromContext(ctx context.Context) (snowflake.ID, string) {
	if ctx == nil {
		return 0, ""
	}
	userID, _ := ctx.Value(userIDKey).(snowflake.ID)
	email, _ := ctx.Value(userEmailKey).(string)
	return userID, email
}

func WithIPAddress(ctx context.Context, ipAddress string) context.Context {
	if ipAddress == "" {
		return ctx
	}
	return context.WithValue(ctx, ipAddressKey, ipAddress)
}

func IPAddressFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(ipAddressKey).(string)
	return value
}

func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	if userAgent == "" {
		return ctx
	}
	return context.WithValue(ctx, userAgentKey, userAgent)
}

func UserAgentFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(userAgentKey).(string)
	return value
}
