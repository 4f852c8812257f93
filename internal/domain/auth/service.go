package auth

import "context"

// AuthService authenticates users against the directory roster and remembers
// the last login name per device.
type AuthService interface {
	Login(ctx context.Context, deviceID string, req LoginRequest) (LoginResponse, error)

	// LastUsername returns the device's remembered login name, or "" when the
	// device has never logged in.
	LastUsername(ctx context.Context, deviceID string) (string, error)
}
