package dashboard

import (
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/teaching"
)

// Stats is the dashboard header summary.
type Stats struct {
	Total    int `json:"total"`
	Present  int `json:"present"`
	Teaching int `json:"teaching"`
	Absent   int `json:"absent"` // IZIN + SAKIT
}

// Snapshot is the view-ready dashboard state served over HTTP and pushed over
// SSE after every refresh.
type Snapshot struct {
	Rows        []Row                  `json:"rows"`
	Teaching    []teaching.SessionView `json:"teaching"`
	Stats       Stats                  `json:"stats"`
	Source      string                 `json:"source"`       // roster source: sheet | sample
	LastUpdated string                 `json:"last_updated"` // RFC3339
}

// Query filters and orders a snapshot.
type Query struct {
	Order  Order
	Search string // matched against name (case-insensitive) and NIP
}
