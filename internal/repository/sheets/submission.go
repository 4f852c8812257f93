package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/submission"
)

// Submit implements submission.Service: one POST to the web app, body JSON,
// Content-Type text/plain so the Apps-Script endpoint never sees a CORS
// preflight. The response body is not inspected (the web app returns nothing
// structured), so a nil error only means unconfirmed, at-most-once delivery.
func (c *Client) Submit(ctx context.Context, env submission.Envelope) (submission.Delivery, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return submission.Delivery{}, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebAppURL, bytes.NewReader(body))
	if err != nil {
		return submission.Delivery{}, err
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return submission.Delivery{}, fmt.Errorf("submit %s: %w", env.Action, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return submission.Delivery{}, fmt.Errorf("submit %s: unexpected status %d", env.Action, resp.StatusCode)
	}

	return submission.Delivery{Confirmed: false, SentAt: time.Now()}, nil
}
