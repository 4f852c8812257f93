package dashboard

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/dashboard"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/directory"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/teaching"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/sse"
)

// Topic is the SSE topic live dashboard snapshots are published on.
const Topic = "dashboard"

type DashboardServiceImpl struct {
	dashboard.FeedRepository
	directoryService directory.DirectoryService
	hub              *sse.Hub
	now              func() time.Time

	mu          sync.RWMutex
	feed        dashboard.Feed
	lastUpdated time.Time
	applied     uint64

	issued atomic.Uint64
}

func NewDashboardService(repo dashboard.FeedRepository, directoryService directory.DirectoryService, hub *sse.Hub) dashboard.DashboardService {
	return &DashboardServiceImpl{
		FeedRepository:   repo,
		directoryService: directoryService,
		hub:              hub,
		now:              time.Now,
	}
}

// Refresh implements dashboard.DashboardService. A fetch that loses the
// issuance race is discarded; the cached feed only ever moves forward. On
// success, subscribed dashboards get the fresh default snapshot pushed.
func (s *DashboardServiceImpl) Refresh(ctx context.Context) error {
	ticket := s.issued.Add(1)

	feed, err := s.FeedRepository.FetchToday(ctx)
	if err != nil {
		// Keep serving the last good feed; the scheduler logs the failure.
		return err
	}

	s.mu.Lock()
	if ticket <= s.applied {
		s.mu.Unlock()
		return nil
	}
	s.feed = feed
	s.lastUpdated = s.now()
	s.applied = ticket
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Publish(Topic, sse.Event{
			Topic: Topic,
			Event: "snapshot",
			Data:  s.Snapshot(ctx, dashboard.Query{Order: dashboard.OrderDaily}),
		})
	}
	return nil
}

// Snapshot implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Snapshot(ctx context.Context, q dashboard.Query) dashboard.Snapshot {
	s.mu.RLock()
	feed := s.feed
	lastUpdated := s.lastUpdated
	s.mu.RUnlock()

	people, source := s.directoryService.Roster(ctx)
	now := s.now()

	rows := make([]dashboard.Row, 0, len(people))
	for _, p := range people {
		if p.IsAdministrative() {
			continue
		}
		rows = append(rows, buildRow(p, feed))
	}

	// Stats cover the whole roster; the search filter only narrows the rows.
	stats := computeStats(rows)

	if q.Search != "" {
		rows = filterRows(rows, q.Search)
	}
	sortRows(rows, q.Order)

	sessions := make([]teaching.SessionView, 0, len(feed.Teaching))
	for _, session := range feed.Teaching {
		sessions = append(sessions, teaching.SessionView{
			ID:        session.ID,
			Name:      session.Name,
			Subject:   session.Subject,
			ClassName: session.ClassName,
			TimeRange: session.TimeRange(),
			Live:      session.IsLiveAt(now),
		})
	}
	// The card counts every journal entry filed today, finished ones included;
	// only the per-row badge distinguishes live sessions.
	stats.Teaching = len(sessions)

	snapshot := dashboard.Snapshot{
		Rows:     rows,
		Teaching: sessions,
		Stats:    stats,
		Source:   string(source),
	}
	if !lastUpdated.IsZero() {
		snapshot.LastUpdated = lastUpdated.Format(time.RFC3339)
	}
	return snapshot
}

// buildRow derives one person's daily verdict. Precedence: an IN event wins
// over everything, then a leave record, then BELUM HADIR. A leave filed by
// someone who later checked in anyway still shows HADIR.
func buildRow(p directory.Person, feed dashboard.Feed) dashboard.Row {
	row := dashboard.Row{
		ID:     p.ID(),
		Name:   p.DisplayName(),
		NIP:    p.NIP,
		Status: dashboard.StatusAbsent,
	}

	for _, event := range feed.Attendance {
		if !eventBelongsTo(event, p) {
			continue
		}
		label := event.TimeLabel()
		switch event.Kind {
		case attendance.KindIn:
			if row.TimeIn == nil && label != "" {
				row.TimeIn = &label
			}
			if row.PhotoURL == nil && event.PhotoURL != "" {
				photo := event.PhotoURL
				row.PhotoURL = &photo
			}
			row.Status = dashboard.StatusPresent
		case attendance.KindOut:
			if label != "" {
				row.TimeOut = &label
			}
		}
	}

	if row.Status != dashboard.StatusPresent {
		for _, record := range feed.Leaves {
			if (record.NIP != "" && record.NIP == p.NIP) || (record.NIP == "" && record.Name == p.Name) {
				if record.IsSick() {
					row.Status = dashboard.StatusSick
				} else {
					row.Status = dashboard.StatusPermission
				}
				break
			}
		}
	}

	// Monthly recap is not derivable from the daily feed yet; today counts as
	// the whole month. TODO: read the recap tab once the web app exposes it.
	if row.Status == dashboard.StatusPresent {
		row.MonthlyPresentDays = 1
	}

	return row
}

// eventBelongsTo matches a feed event to a roster person: by NIP when both
// sides have one, by name otherwise.
func eventBelongsTo(event attendance.Event, p directory.Person) bool {
	if event.NIP != "" && p.NIP != "" {
		return event.NIP == p.NIP
	}
	return event.Name != "" && event.Name == p.Name
}

func computeStats(rows []dashboard.Row) dashboard.Stats {
	stats := dashboard.Stats{Total: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case dashboard.StatusPresent:
			stats.Present++
		case dashboard.StatusPermission, dashboard.StatusSick:
			stats.Absent++
		}
	}
	return stats
}

func filterRows(rows []dashboard.Row, search string) []dashboard.Row {
	needle := strings.ToLower(search)
	filtered := make([]dashboard.Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), needle) || strings.Contains(row.NIP, search) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// statusRank orders the daily view: present first, excused second, absent
// last.
func statusRank(s dashboard.RowStatus) int {
	switch s {
	case dashboard.StatusPresent:
		return 0
	case dashboard.StatusPermission, dashboard.StatusSick:
		return 1
	default:
		return 2
	}
}

func sortRows(rows []dashboard.Row, order dashboard.Order) {
	switch order {
	case dashboard.OrderRanking:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].MonthlyPresentDays > rows[j].MonthlyPresentDays
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			ri, rj := statusRank(rows[i].Status), statusRank(rows[j].Status)
			if ri != rj {
				return ri < rj
			}
			if ri == 0 {
				ti, tj := "", ""
				if rows[i].TimeIn != nil {
					ti = *rows[i].TimeIn
				}
				if rows[j].TimeIn != nil {
					tj = *rows[j].TimeIn
				}
				if ti != tj {
					return ti < tj
				}
			}
			return rows[i].Name < rows[j].Name
		})
	}
}
