package attendance

import "context"

// AttendanceService gates and submits check-in/check-out actions. The device
// ID comes from the X-Device-ID header; the acting person from the JWT claims
// in ctx.
type AttendanceService interface {
	// Status reports the session state machine and time-rule evaluation for
	// the device at the current wall-clock time.
	Status(ctx context.Context, deviceID string) (StatusResponse, error)

	// CheckIn validates the GPS fix, geofence, photo and device lock, then
	// optimistically submits an IN event and locks the device for IN.
	CheckIn(ctx context.Context, deviceID string, req CheckRequest) (CheckResponse, error)

	// CheckOut additionally requires session status PRESENT and the checkout
	// window to be open for today's weekday.
	CheckOut(ctx context.Context, deviceID string, req CheckRequest) (CheckResponse, error)
}
