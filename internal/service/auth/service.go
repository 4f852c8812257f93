package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/auth"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/directory"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/jwt"
)

// DeviceMemory remembers the last login name per device so the client can
// prefill the username field.
type DeviceMemory interface {
	LastUsername(ctx context.Context, deviceID string) (string, error)
	RememberUsername(ctx context.Context, deviceID string, username string) error
}

type AuthServiceImpl struct {
	directoryService directory.DirectoryService
	jwtService       jwt.Service
	devices          DeviceMemory
}

func NewAuthService(directoryService directory.DirectoryService, jwtService jwt.Service, devices DeviceMemory) auth.AuthService {
	return &AuthServiceImpl{
		directoryService: directoryService,
		jwtService:       jwtService,
		devices:          devices,
	}
}

// Login implements auth.AuthService. The username is matched
// case-insensitively; the password is the sheet's opaque credential and is
// compared verbatim, exactly as stored. An unknown username and a wrong
// password produce the same error so the response does not leak which one it
// was.
func (a *AuthServiceImpl) Login(ctx context.Context, deviceID string, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	person, err := a.directoryService.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, directory.ErrPersonNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if person.Password != req.Password {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	// Akun ada, tapi perannya tidak cocok dengan tab login yang dipakai.
	if !person.MatchesRole(req.Mode) {
		return auth.LoginResponse{}, &auth.RoleMismatchError{
			ActualRole:    person.Role,
			RequestedMode: req.Mode,
		}
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(person.Username, person.DisplayName(), person.NIP, req.Mode)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	// Losing the remembered name only costs the user a retype; never fail a
	// successful login over it.
	if err := a.devices.RememberUsername(ctx, deviceID, person.Username); err != nil {
		slog.Warn("failed to remember last username", "device", deviceID, "error", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User: auth.UserInfo{
			ID:               person.ID(),
			Name:             person.DisplayName(),
			NIP:              person.NIP,
			Role:             req.Mode,
			Avatar:           person.Avatar,
			School:           person.School,
			EmploymentStatus: person.EmploymentStatus,
		},
	}, nil
}

// LastUsername implements auth.AuthService.
func (a *AuthServiceImpl) LastUsername(ctx context.Context, deviceID string) (string, error) {
	return a.devices.LastUsername(ctx, deviceID)
}
