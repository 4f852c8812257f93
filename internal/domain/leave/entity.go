package leave

type Kind string

const (
	KindIzin  Kind = "Izin"
	KindSakit Kind = "Sakit"
	KindDinas Kind = "Dinas"
)

// Record is one leave row from today's feed, read back by the dashboard
// aggregator to explain an absence.
type Record struct {
	NIP    string
	Name   string
	Status string // the leave kind as stored by the web app, e.g. "Sakit"
}

// IsSick reports whether the record explains the absence as sick leave rather
// than permission.
func (r Record) IsSick() bool {
	return r.Status == string(KindSakit)
}
