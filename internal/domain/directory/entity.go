package directory

import "strings"

// Person is one row of the personnel sheet after header normalization.
// Records are immutable for the session; the roster is replaced wholesale on
// every refresh, never mutated in place.
type Person struct {
	Username         string
	Password         string // opaque credential, compared verbatim at login
	Name             string
	NIP              string
	Role             string // free text from the sheet, e.g. "Guru PAI"
	School           string
	EmploymentStatus string
	Avatar           string

	// Extra keeps unrecognized sheet columns as-is.
	Extra map[string]string
}

// ID returns the identity key: NIP, falling back to the username when the
// sheet row has no NIP.
func (p Person) ID() string {
	if p.NIP != "" {
		return p.NIP
	}
	return p.Username
}

// DisplayName prefers the full name over the login name.
func (p Person) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Username
}

// MatchesRole reports whether the sheet's free-text role grants the requested
// role. Matching is a case-insensitive substring check, so "Guru PAI" matches
// "Guru" and "Administrator" matches "Admin".
func (p Person) MatchesRole(requested string) bool {
	return strings.Contains(strings.ToLower(p.Role), strings.ToLower(requested))
}

// IsAdministrative reports whether the person is an administrative account and
// therefore excluded from the attendance roster.
func (p Person) IsAdministrative() bool {
	role := strings.ToLower(p.Role)
	return strings.Contains(role, "admin") || strings.Contains(role, "superadmin")
}

// Source tells where a fetched roster came from.
type Source string

const (
	// SourceSheet means the roster was parsed from the published CSV.
	SourceSheet Source = "sheet"
	// SourceSample means every fetch attempt failed and the built-in sample
	// directory is in use. Degraded mode, not an error.
	SourceSample Source = "sample"
)
