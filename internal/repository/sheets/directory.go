package sheets

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/directory"
)

// FetchDirectory implements directory.DirectoryRepository. It tries the
// published CSV, then the fallback URL, then gives up and returns the built-in
// sample roster so the app stays demonstrable offline. The returned error is
// nil in the sample case: degraded mode is the repository's contract, not a
// failure.
func (c *Client) FetchDirectory(ctx context.Context) ([]directory.Person, directory.Source, error) {
	urls := []string{c.cfg.DirectoryURL}
	if c.cfg.FallbackDirectoryURL != "" {
		urls = append(urls, c.cfg.FallbackDirectoryURL)
	}

	for i, url := range urls {
		body, err := c.fetchCSV(ctx, url)
		if err != nil {
			slog.Warn("directory fetch attempt failed", "attempt", i+1, "error", err)
			continue
		}
		return ParseDirectoryCSV(body), directory.SourceSheet, nil
	}

	slog.Warn("all directory fetch attempts failed, using built-in sample roster")
	return SamplePeople(), directory.SourceSample, nil
}

func (c *Client) fetchCSV(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	body, err := c.get(req)
	if err != nil {
		return "", err
	}
	text := string(body)
	if !isTabular(text) {
		return "", errNotTabular
	}
	return text, nil
}

type notTabularError struct{}

func (notTabularError) Error() string { return "response body is not CSV (likely an HTML error page)" }

var errNotTabular = notTabularError{}

// isTabular rejects empty bodies and HTML error pages served in place of the
// published CSV.
func isTabular(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	return !strings.HasPrefix(lower, "<!doctype html") && !strings.HasPrefix(lower, "<html")
}

// ParseDirectoryCSV turns the published sheet into person records: one record
// per non-blank data row, positional header-to-value mapping, missing trailing
// cells omitted. Fewer than two non-blank lines yields an empty slice.
func ParseDirectoryCSV(text string) []directory.Person {
	lines := splitLines(text)
	if len(lines) < 2 {
		return []directory.Person{}
	}

	headers := parseLine(lines[0])
	for i, h := range headers {
		headers[i] = normalizeHeader(h)
	}

	people := make([]directory.Person, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := parseLine(line)
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" || i >= len(values) {
				continue
			}
			row[header] = values[i]
		}
		people = append(people, personFromRow(row))
	}
	return people
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range regexp.MustCompile(`\r?\n`).Split(text, -1) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseLine tokenizes one CSV line: quotes toggle an inside-field mode, a
// doubled quote inside quotes is a literal quote, a comma outside quotes ends
// the field.
func parseLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	values = append(values, current.String())

	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// Canonical column names and their sheet-side synonyms. Comparison is on the
// lowercased header with every non-alphanumeric rune removed.
var headerSynonyms = map[string]string{
	"username": "Username", "user": "Username", "id": "Username",
	"password": "Password", "pass": "Password", "sandi": "Password", "katasandi": "Password", "pin": "Password",
	"nama": "Nama", "name": "Nama", "namalengkap": "Nama", "fullname": "Nama",
	"nip": "NIP", "nomorinduk": "NIP", "idpegawai": "NIP",
	"role": "Role", "peran": "Role", "jabatan": "Role", "level": "Role", "akses": "Role",
	"sekolah": "Sekolah", "school": "Sekolah", "unitkerja": "Sekolah", "instansi": "Sekolah",
	"status": "Status", "statuspegawai": "Status", "kepegawaian": "Status",
	"avatar": "Avatar", "foto": "Avatar", "photo": "Avatar", "gambar": "Avatar", "urlfoto": "Avatar",
}

var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]`)

func normalizeHeader(header string) string {
	key := nonAlnumRegex.ReplaceAllString(strings.ToLower(header), "")
	if canonical, ok := headerSynonyms[key]; ok {
		return canonical
	}
	// Unrecognized headers pass through unchanged as extra attributes.
	return header
}

func personFromRow(row map[string]string) directory.Person {
	p := directory.Person{
		Username:         row["Username"],
		Password:         row["Password"],
		Name:             row["Nama"],
		NIP:              row["NIP"],
		Role:             row["Role"],
		School:           row["Sekolah"],
		EmploymentStatus: row["Status"],
		Avatar:           row["Avatar"],
	}
	for k, v := range row {
		switch k {
		case "Username", "Password", "Nama", "NIP", "Role", "Sekolah", "Status", "Avatar":
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[k] = v
		}
	}
	return p
}

// SamplePeople is the fixed offline roster: one teacher, one admin.
func SamplePeople() []directory.Person {
	return []directory.Person{
		{
			Username:         "guru1",
			Password:         "123",
			Name:             "Bpk. Ahmad Suherman, S.Pd",
			NIP:              "198506122010011005",
			Role:             "Guru",
			School:           "SMPN 1 Padarincang",
			EmploymentStatus: "PNS / ASN",
			Avatar:           "https://picsum.photos/200?random=1",
		},
		{
			Username:         "admin1",
			Password:         "123",
			Name:             "Hj. Siti Aminah, M.Pd",
			NIP:              "197005121995012001",
			Role:             "Admin",
			School:           "SMPN 1 Padarincang",
			EmploymentStatus: "Kepala Sekolah",
			Avatar:           "https://picsum.photos/200?random=2",
		},
	}
}
