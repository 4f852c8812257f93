package leave

import (
	"strings"

	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/validator"
)

const (
	minReasonLength   = 10
	maxAttachmentSize = 5 << 20 // 5MB, matching the client's upload cap
)

// SubmitRequest files a leave request for a date range. The attachment is an
// optional base64 data URL (medical letter, assignment letter).
type SubmitRequest struct {
	LeaveType        string `json:"leave_type"` // Izin | Sakit | Dinas
	StartDate        string `json:"start_date"` // YYYY-MM-DD
	EndDate          string `json:"end_date"`   // YYYY-MM-DD
	Reason           string `json:"reason"`
	AttachmentBase64 string `json:"attachment_base64,omitempty"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.LeaveType, []string{string(KindIzin), string(KindSakit), string(KindDinas)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: Izin, Sakit, Dinas",
		})
	}

	if validator.IsEmpty(r.StartDate) || validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "Pilih rentang tanggal.",
		})
	} else {
		start, startOK := validator.IsValidDate(r.StartDate)
		end, endOK := validator.IsValidDate(r.EndDate)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		if startOK && endOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(strings.TrimSpace(r.Reason)) < minReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "Alasan minimal 10 karakter.",
		})
	}

	if len(r.AttachmentBase64) > maxAttachmentSize {
		errs = append(errs, validator.ValidationError{
			Field:   "attachment",
			Message: "File max 5MB.",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitResponse reports the optimistic outcome of a leave submission.
type SubmitResponse struct {
	LeaveType         string `json:"leave_type"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	DeliveryConfirmed bool   `json:"delivery_confirmed"`
}
