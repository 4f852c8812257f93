package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectoryCSVQuotedComma(t *testing.T) {
	csv := "Nama,Username,Password\n" +
		"\"Doe, Jane\",guru1,secret\n"

	people := ParseDirectoryCSV(csv)
	require.Len(t, people, 1)
	assert.Equal(t, "Doe, Jane", people[0].Name)
	assert.Equal(t, "guru1", people[0].Username)
	assert.Equal(t, "secret", people[0].Password)
}

func TestParseDirectoryCSVEscapedQuote(t *testing.T) {
	csv := "Nama,Username\n" +
		"\"Ahmad \"\"Mat\"\" Suherman\",guru2\n"

	people := ParseDirectoryCSV(csv)
	require.Len(t, people, 1)
	assert.Equal(t, `Ahmad "Mat" Suherman`, people[0].Name)
}

func TestParseDirectoryCSVHeaderSynonyms(t *testing.T) {
	// Header variants differing in case and punctuation map to the same
	// canonical columns; unknown headers survive as extras.
	csv := "User_Name,Kata Sandi,FULLNAME,Nomor Induk,Jabatan,Instansi,Kepegawaian,URL Foto,Hobi\n" +
		"guru9,rahasia,Ibu Ratna,1977,Guru IPA,SMPN 1,PNS,http://x/a.png,membaca\n"

	people := ParseDirectoryCSV(csv)
	require.Len(t, people, 1)

	p := people[0]
	assert.Equal(t, "guru9", p.Username)
	assert.Equal(t, "rahasia", p.Password)
	assert.Equal(t, "Ibu Ratna", p.Name)
	assert.Equal(t, "1977", p.NIP)
	assert.Equal(t, "Guru IPA", p.Role)
	assert.Equal(t, "SMPN 1", p.School)
	assert.Equal(t, "PNS", p.EmploymentStatus)
	assert.Equal(t, "http://x/a.png", p.Avatar)
	assert.Equal(t, "membaca", p.Extra["Hobi"])
}

func TestParseDirectoryCSVShortInput(t *testing.T) {
	// Header only, blank lines only, or nothing at all: empty result, no error.
	for _, csv := range []string{"", "\n\n\n", "Username,Password\n", "Username,Password\r\n\r\n"} {
		assert.Empty(t, ParseDirectoryCSV(csv), "input %q", csv)
	}
}

func TestParseDirectoryCSVMissingTrailingValues(t *testing.T) {
	csv := "Username,Password,Nama,NIP\nguru1,secret\n"

	people := ParseDirectoryCSV(csv)
	require.Len(t, people, 1)
	assert.Equal(t, "guru1", people[0].Username)
	assert.Equal(t, "secret", people[0].Password)
	assert.Empty(t, people[0].Name)
	assert.Empty(t, people[0].NIP)
}

func TestParseDirectoryCSVCRLF(t *testing.T) {
	csv := "Username,Nama\r\nguru1,Pak Ahmad\r\nguru2,Bu Siti\r\n"

	people := ParseDirectoryCSV(csv)
	require.Len(t, people, 2)
	assert.Equal(t, "Pak Ahmad", people[0].Name)
	assert.Equal(t, "Bu Siti", people[1].Name)
}

func TestFetchDirectoryLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Username,Password,Nama,Role\nguru1,123,Pak Ahmad,Guru\n"))
	}))
	defer srv.Close()

	client := NewClient(Config{DirectoryURL: srv.URL})
	people, source, err := client.FetchDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, directory.SourceSheet, source)
	require.Len(t, people, 1)
	assert.Equal(t, "Pak Ahmad", people[0].Name)
}

func TestFetchDirectoryHTMLBodyFallsBack(t *testing.T) {
	// An HTML error page in place of the CSV must not be parsed as a roster.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>Temporarily unavailable</body></html>"))
	}))
	defer srv.Close()

	client := NewClient(Config{DirectoryURL: srv.URL})
	people, source, err := client.FetchDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, directory.SourceSample, source)
	require.Len(t, people, 2)
	assert.Equal(t, "guru1", people[0].Username)
	assert.Equal(t, "admin1", people[1].Username)
}

func TestFetchDirectoryFallbackURL(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer primary.Close()
	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Username,Nama\nguru7,Bu Rina\n"))
	}))
	defer secondary.Close()

	client := NewClient(Config{DirectoryURL: primary.URL, FallbackDirectoryURL: secondary.URL})
	people, source, err := client.FetchDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, directory.SourceSheet, source)
	require.Len(t, people, 1)
	assert.Equal(t, "Bu Rina", people[0].Name)
}
