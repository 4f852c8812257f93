package auth

import (
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/validator"
)

// LoginRequest authenticates against the personnel sheet. Mode is the tab the
// user logged in from; the sheet's free-text role must contain it.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Mode     string `json:"mode"` // Guru | Admin
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}
	if !validator.IsInSlice(r.Mode, []string{"Guru", "Admin"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: Guru, Admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserInfo is the authenticated identity as the client renders it.
type UserInfo struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NIP              string `json:"nip"`
	Role             string `json:"role"` // the login mode, not the sheet's free text
	Avatar           string `json:"avatar"`
	School           string `json:"school"`
	EmploymentStatus string `json:"employment_status"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresAt   int64    `json:"expires_at"`
	User        UserInfo `json:"user"`
}

type LastUsernameResponse struct {
	Username string `json:"username"`
}
