package middleware

import (
	"context"
	"net/http"

	"github.com/smpn1padarincang/presensi-backend-go/internal/handler/http/response"
)

type contextKey string

const deviceIDKey contextKey = "device_id"

// DeviceRequired enforces the X-Device-ID header the client mints on first
// launch. The daily lock is keyed by it, so endpoints that touch the lock
// cannot run without one.
func DeviceRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := r.Header.Get("X-Device-ID")
		if deviceID == "" {
			response.BadRequest(w, "Header X-Device-ID is required", nil)
			return
		}

		ctx := context.WithValue(r.Context(), deviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceID returns the device id stored by DeviceRequired, "" when the route
// did not pass through it.
func DeviceID(ctx context.Context) string {
	id, _ := ctx.Value(deviceIDKey).(string)
	return id
}
