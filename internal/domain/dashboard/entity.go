package dashboard

import (
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/leave"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/teaching"
)

// Feed is today's event data from the spreadsheet web app. A failed or absent
// fetch yields the zero Feed (all empty), never an error to readers.
type Feed struct {
	Attendance []attendance.Event
	Teaching   []teaching.Session
	Leaves     []leave.Record
}

// RowStatus is the daily attendance verdict per person. The labels are the
// sheet's own vocabulary and part of the client contract.
type RowStatus string

const (
	StatusPresent    RowStatus = "HADIR"
	StatusPermission RowStatus = "IZIN"
	StatusSick       RowStatus = "SAKIT"
	StatusAbsent     RowStatus = "BELUM HADIR"
)

// Row is one attendance-status record per roster person, recomputed every
// refresh. Exactly one row exists per person.
type Row struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	NIP                string    `json:"nip"`
	TimeIn             *string   `json:"time_in"`  // HH:MM, nil without an IN event
	TimeOut            *string   `json:"time_out"` // HH:MM, nil without an OUT event
	Status             RowStatus `json:"status"`
	PhotoURL           *string   `json:"photo_url"`
	MonthlyPresentDays int       `json:"monthly_present_days"`
}

// Order selects one of the two derived sort orders.
type Order string

const (
	// OrderDaily: HADIR first (by check-in time), then IZIN/SAKIT, then
	// BELUM HADIR; remaining ties by name.
	OrderDaily Order = "daily"
	// OrderRanking: monthly present counter, descending, stable.
	OrderRanking Order = "ranking"
)
