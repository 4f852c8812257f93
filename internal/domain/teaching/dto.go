package teaching

import (
	"mime/multipart"
	"strings"

	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/validator"
)

// Subjects and rooms offered by the client. Kept server-side so a tampered
// client cannot journal a class that does not exist.
var (
	SubjectOptions = []string{
		"PAI", "PKN", "B. INDONESIA", "B. INGGRIS", "IPA", "IPS", "PJOK",
		"SBD", "TIK", "MATEMATIKA", "KASERANGAN", "BTQ", "PRAKARYA", "BP/BK",
	}
	RoomOptions = []string{
		"VII - A", "VII - B", "VII - C", "VII - D", "VII - E", "VII - F", "VII - G",
		"VIII - A", "VIII - B", "VIII - C", "VIII - D", "VIII - E", "VIII - F", "VIII - G",
		"IX - A", "IX - B", "IX - C", "IX - D", "IX - E", "IX - F", "IX - G",
	}
)

// SubmitRequest is one teaching journal entry with a proof photo.
type SubmitRequest struct {
	Subject    string                `json:"subject"`
	ClassName  string                `json:"class_name"`
	StartTime  string                `json:"start_time"` // HH:MM
	EndTime    string                `json:"end_time"`   // HH:MM
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Subject, SubjectOptions) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "unknown subject",
		})
	}

	if !validator.IsInSlice(r.ClassName, RoomOptions) {
		errs = append(errs, validator.ValidationError{
			Field:   "class_name",
			Message: "unknown class",
		})
	}

	if validator.IsEmpty(r.StartTime) || validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "Waktu mengajar wajib isi.",
		})
	} else {
		if !validator.IsValidClockTime(r.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		if !validator.IsValidClockTime(r.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
		// Lexicographic compare works for zero-padded HH:MM.
		if validator.IsValidClockTime(r.StartTime) && validator.IsValidClockTime(r.EndTime) && r.StartTime >= r.EndTime {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "Jam selesai tidak valid.",
			})
		}
	}

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "Wajib lampirkan foto bukti mengajar.",
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
		} else if r.FileHeader.Size > 10<<20 {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "proof photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubmitResponse reports the optimistic outcome of a journal submission.
type SubmitResponse struct {
	ID                string `json:"id"`
	Subject           string `json:"subject"`
	ClassName         string `json:"class_name"`
	TimeRange         string `json:"time_range"`
	DeliveryConfirmed bool   `json:"delivery_confirmed"`
}

// SessionView is a feed session prepared for display.
type SessionView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	ClassName string `json:"class_name"`
	TimeRange string `json:"time_range"`
	Live      bool   `json:"live"`
}
