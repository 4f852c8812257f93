package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/dashboard"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/leave"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/teaching"
)

// Wire rows as the web app serves them. Every field is optional on the wire;
// defaults are made explicit here rather than at the point of use.
type feedPayload struct {
	Attendance []attendanceRow `json:"attendance"`
	Teaching   []teachingRow   `json:"teaching"`
	Leaves     []leaveRow      `json:"leaves"`
}

type attendanceRow struct {
	NIP       string  `json:"nip"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Timestamp string  `json:"timestamp"`
	Location  string  `json:"location"`
	Distance  float64 `json:"distance"`
	Photo     string  `json:"photo"`
}

type teachingRow struct {
	ID        flexString `json:"id"`
	Name      string     `json:"name"`
	Subject   string     `json:"subject"`
	ClassName string     `json:"className"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
}

type leaveRow struct {
	NIP       string `json:"nip"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	LeaveType string `json:"leaveType"`
}

// flexString accepts both JSON strings and numbers; the web app is not
// consistent about row id types.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	return fmt.Errorf("id is neither string nor number: %s", data)
}

// FetchToday implements dashboard.FeedRepository. The t parameter busts the
// web app's response cache, as the hosted client does.
func (c *Client) FetchToday(ctx context.Context) (dashboard.Feed, error) {
	url := fmt.Sprintf("%s?action=GET_DASHBOARD_DATA&t=%d", c.cfg.WebAppURL, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dashboard.Feed{}, err
	}

	body, err := c.get(req)
	if err != nil {
		return dashboard.Feed{}, fmt.Errorf("fetch dashboard feed: %w", err)
	}

	var payload feedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return dashboard.Feed{}, fmt.Errorf("decode dashboard feed: %w", err)
	}

	feed := dashboard.Feed{
		Attendance: make([]attendance.Event, 0, len(payload.Attendance)),
		Teaching:   make([]teaching.Session, 0, len(payload.Teaching)),
		Leaves:     make([]leave.Record, 0, len(payload.Leaves)),
	}

	for _, row := range payload.Attendance {
		feed.Attendance = append(feed.Attendance, attendance.Event{
			NIP:       row.NIP,
			Name:      row.Name,
			Kind:      attendance.Kind(row.Type),
			Timestamp: parseEventTimestamp(row.Timestamp),
			Location:  row.Location,
			Distance:  row.Distance,
			PhotoURL:  row.Photo,
		})
	}

	for _, row := range payload.Teaching {
		feed.Teaching = append(feed.Teaching, teaching.Session{
			ID:        "teach-" + string(row.ID),
			Name:      row.Name,
			Subject:   row.Subject,
			ClassName: row.ClassName,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}

	for _, row := range payload.Leaves {
		status := row.Status
		if status == "" {
			status = row.LeaveType
		}
		feed.Leaves = append(feed.Leaves, leave.Record{
			NIP:    row.NIP,
			Name:   row.Name,
			Status: status,
		})
	}

	return feed, nil
}

// parseEventTimestamp tolerates the timestamp shapes the sheet produces;
// anything else maps to the zero time (displayed as no time).
func parseEventTimestamp(v string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Local()
		}
	}
	return time.Time{}
}
