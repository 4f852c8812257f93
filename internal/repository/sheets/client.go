// Package sheets is the data-access layer against the two spreadsheet
// endpoints: the published personnel CSV and the Apps-Script web app that
// stores events and serves the dashboard feed. It fills the role a SQL
// repository layer would in a database-backed deployment.
package sheets

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config carries the endpoint URLs. FallbackDirectoryURL is optional; it is
// tried when the direct CSV fetch fails (the hosted client uses a CORS proxy
// for the same purpose).
type Config struct {
	DirectoryURL         string
	FallbackDirectoryURL string
	WebAppURL            string
	Timeout              time.Duration
}

// Client is the shared HTTP transport for all sheet access. Redirects are
// followed; the web app answers through one.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// get performs a GET and returns the body on 2xx, limited to 10MB.
func (c *Client) get(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
