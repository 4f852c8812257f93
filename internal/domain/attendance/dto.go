package attendance

import (
	"mime/multipart"
	"strings"

	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/validator"
)

// CheckRequest is the payload for both check-in and check-out: a GPS fix plus
// a selfie photo. Latitude and longitude are pointers so a missing fix is
// distinguishable from coordinate (0, 0) and can be rejected before any
// distance math runs.
type CheckRequest struct {
	Latitude   *float64              `json:"latitude"`
	Longitude  *float64              `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil || r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "Wajib GPS aktif.",
		})
	} else {
		if !validator.IsValidLatitude(*r.Latitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude must be between -90 and 90",
			})
		}
		if !validator.IsValidLongitude(*r.Longitude) {
			errs = append(errs, validator.ValidationError{
				Field:   "longitude",
				Message: "longitude must be between -180 and 180",
			})
		}
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "Wajib foto selfie.",
		})
	} else {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "selfie photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckResponse reports the optimistic outcome of a check-in/out.
type CheckResponse struct {
	Kind              Kind    `json:"kind"`
	Timestamp         string  `json:"timestamp"` // RFC3339
	DistanceMeters    float64 `json:"distance_meters"`
	Late              *bool   `json:"late,omitempty"` // check-in only
	Status            Status  `json:"status"`
	DeliveryConfirmed bool    `json:"delivery_confirmed"` // always false on this transport
}

// StatusResponse drives the client's button gating: the session state machine,
// the device lock flags, and today's time-rule evaluation.
type StatusResponse struct {
	Status           Status `json:"status"`
	DeviceLockedIn   bool   `json:"device_locked_in"`
	DeviceLockedOut  bool   `json:"device_locked_out"`
	CanCheckIn       bool   `json:"can_check_in"`
	CanCheckOut      bool   `json:"can_check_out"`
	CheckoutOpen     bool   `json:"checkout_open"`
	CheckoutTime     string `json:"checkout_time"` // HH:MM threshold for today
	LateIfCheckInNow bool   `json:"late_if_check_in_now"`
	ServerTime       string `json:"server_time"` // RFC3339
	Date             string `json:"date"`        // YYYY-MM-DD local
}
