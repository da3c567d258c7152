package utils

import (
	"context"
	"log"
	"strings"
)

type ctxKey int

const requestIDKey ctxKey = iota

// LogEvent prints a standardized log line with module/action/request_id.
// Keep payloads out of msg; summarize instead.
func LogEvent(requestID, module, action, msg string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, strings.TrimSpace(requestID), msg)
}

// LogCtx is LogEvent with the request id taken from ctx.
func LogCtx(ctx context.Context, module, action, msg string) {
	LogEvent(RequestID(ctx), module, action, msg)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
