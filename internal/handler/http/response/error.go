package response

import (
	"errors"
	"net/http"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/auth"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/directory"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Business rejections that carry a user-facing Indonesian message travel
	// as 422 so the client renders them the same way as field errors.
	var outsideRadius *attendance.OutsideRadiusError
	if errors.As(err, &outsideRadius) {
		ValidationError(w, map[string]string{"location": outsideRadius.Error()})
		return
	}

	var roleMismatch *auth.RoleMismatchError
	if errors.As(err, &roleMismatch) {
		Forbidden(w, roleMismatch.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")

	// Directory domain errors
	case errors.Is(err, directory.ErrPersonNotFound):
		NotFound(w, "Person not found")

	// Attendance state machine errors
	case errors.Is(err, attendance.ErrDeviceAlreadyCheckedIn):
		Conflict(w, "Perangkat ini sudah digunakan untuk absen masuk hari ini.")
	case errors.Is(err, attendance.ErrDeviceAlreadyCheckedOut):
		Conflict(w, "Perangkat ini sudah digunakan untuk absen pulang hari ini.")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Anda belum absen masuk hari ini.")
	case errors.Is(err, attendance.ErrCheckoutNotOpen):
		Conflict(w, "Belum waktunya absen pulang.")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
