package attendance

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/devicelock"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/submission"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/geo"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	schoolLat = -6.207676212766887
	schoolLng = 105.97295421490682
)

type memLocks struct {
	states map[string]devicelock.State
}

func newMemLocks() *memLocks { return &memLocks{states: map[string]devicelock.State{}} }

func (m *memLocks) Get(ctx context.Context, deviceID string, date string) (devicelock.State, error) {
	state, ok := m.states[deviceID]
	if !ok || state.Date != date {
		return devicelock.State{Date: date}, nil
	}
	return state, nil
}

func (m *memLocks) Mark(ctx context.Context, deviceID string, date string, kind devicelock.Kind) error {
	state, _ := m.Get(ctx, deviceID, date)
	switch kind {
	case devicelock.KindIn:
		state.CheckedIn = true
	case devicelock.KindOut:
		state.CheckedOut = true
	}
	m.states[deviceID] = state
	return nil
}

type recordingSubmitter struct {
	mu        sync.Mutex
	delay     time.Duration
	envelopes []submission.Envelope
}

func (r *recordingSubmitter) Submit(ctx context.Context, env submission.Envelope) (submission.Delivery, error) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	r.envelopes = append(r.envelopes, env)
	r.mu.Unlock()
	return submission.Delivery{Confirmed: false, SentAt: time.Now()}, nil
}

type nopCloserFile struct{ *bytes.Reader }

func (nopCloserFile) Close() error { return nil }

func photoRequest(lat, lng float64) attendance.CheckRequest {
	return attendance.CheckRequest{
		Latitude:  &lat,
		Longitude: &lng,
		File:      nopCloserFile{bytes.NewReader([]byte("jpeg-bytes"))},
		FileHeader: &multipart.FileHeader{
			Filename: "selfie.jpg",
			Size:     10,
			Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
		},
	}
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := tokenAuth.Encode(map[string]interface{}{
		"username": "guru1",
		"name":     "Ahmad Suherman",
		"nip":      "198506122010011005",
		"role":     "Guru",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(locks devicelock.Store, submitter submission.Service, at time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		locks:     locks,
		submitter: submitter,
		fence:     geo.Fence{Lat: schoolLat, Lng: schoolLng, RadiusMeters: 50},
		rules:     schedule.DefaultRules(),
		now:       func() time.Time { return at },
	}
}

// 2026-03-09 is a Monday.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, 0, 0, time.Local)
}

func TestCheckInHappyPath(t *testing.T) {
	locks := newMemLocks()
	submitter := &recordingSubmitter{}
	svc := newTestService(locks, submitter, mondayAt(7, 0))

	resp, err := svc.CheckIn(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	require.NoError(t, err)

	assert.Equal(t, attendance.KindIn, resp.Kind)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.Late)
	assert.False(t, *resp.Late, "07:00 is before the late threshold")
	assert.False(t, resp.DeliveryConfirmed, "delivery on this transport is never confirmed")

	require.Len(t, submitter.envelopes, 1)
	env := submitter.envelopes[0]
	assert.Equal(t, submission.ActionAttendance, env.Action)
	assert.Equal(t, "198506122010011005", env.User.NIP)
	payload := env.Data.(attendancePayload)
	assert.Equal(t, "IN", payload.Type)
	assert.Contains(t, payload.PhotoBase64, "data:image/jpeg;base64,")

	state, _ := locks.Get(context.Background(), "device-a", "2026-03-09")
	assert.True(t, state.CheckedIn, "device must be locked after check-in")
}

func TestCheckInAfterThresholdIsLate(t *testing.T) {
	svc := newTestService(newMemLocks(), &recordingSubmitter{}, mondayAt(7, 16))

	resp, err := svc.CheckIn(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	require.NoError(t, err)
	require.NotNil(t, resp.Late)
	assert.True(t, *resp.Late)
}

func TestCheckInOutsideRadius(t *testing.T) {
	submitter := &recordingSubmitter{}
	svc := newTestService(newMemLocks(), submitter, mondayAt(7, 0))

	_, err := svc.CheckIn(authedContext(t), "device-a", photoRequest(schoolLat+0.01, schoolLng))

	var outside *attendance.OutsideRadiusError
	require.ErrorAs(t, err, &outside)
	assert.Greater(t, outside.DistanceMeters, 50.0)
	assert.Contains(t, err.Error(), "di luar radius sekolah")
	assert.Empty(t, submitter.envelopes, "an out-of-radius fix must never be submitted")
}

func TestCheckInDeviceAlreadyLocked(t *testing.T) {
	locks := newMemLocks()
	require.NoError(t, locks.Mark(context.Background(), "device-a", "2026-03-09", devicelock.KindIn))
	svc := newTestService(locks, &recordingSubmitter{}, mondayAt(8, 0))

	_, err := svc.CheckIn(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	assert.ErrorIs(t, err, attendance.ErrDeviceAlreadyCheckedIn)
}

func TestCheckInConcurrentSameDevice(t *testing.T) {
	locks := newMemLocks()
	// The delay keeps one submission in flight while the second request reads
	// the lock, which is exactly when a double submit would slip through.
	submitter := &recordingSubmitter{delay: 20 * time.Millisecond}
	svc := newTestService(locks, submitter, mondayAt(7, 0))
	ctx := authedContext(t)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, "device-a", photoRequest(schoolLat, schoolLng))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, attendance.ErrDeviceAlreadyCheckedIn):
			rejected++
		default:
			t.Fatalf("unexpected error from racing check-in: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "only one of the racing check-ins may go through")
	assert.Equal(t, 1, rejected, "the loser must see the device lock")
	assert.Len(t, submitter.envelopes, 1, "only one envelope may leave the process")
}

func TestCheckInWithoutGPS(t *testing.T) {
	svc := newTestService(newMemLocks(), &recordingSubmitter{}, mondayAt(7, 0))

	req := photoRequest(schoolLat, schoolLng)
	req.Latitude = nil
	req.Longitude = nil

	_, err := svc.CheckIn(authedContext(t), "device-a", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Wajib GPS aktif.")
}

func TestCheckOutBeforeWindowOpens(t *testing.T) {
	locks := newMemLocks()
	require.NoError(t, locks.Mark(context.Background(), "device-a", "2026-03-09", devicelock.KindIn))
	svc := newTestService(locks, &recordingSubmitter{}, mondayAt(14, 44))

	_, err := svc.CheckOut(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	assert.ErrorIs(t, err, attendance.ErrCheckoutNotOpen)
}

func TestCheckOutAtThresholdMinute(t *testing.T) {
	locks := newMemLocks()
	require.NoError(t, locks.Mark(context.Background(), "device-a", "2026-03-09", devicelock.KindIn))
	svc := newTestService(locks, &recordingSubmitter{}, mondayAt(14, 45))

	resp, err := svc.CheckOut(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOut, resp.Status)
	assert.Nil(t, resp.Late, "lateness only applies to check-in")
}

func TestCheckOutFridayOpensEarly(t *testing.T) {
	locks := newMemLocks()
	// 2026-03-13 is a Friday.
	friday := time.Date(2026, 3, 13, 11, 0, 0, 0, time.Local)
	require.NoError(t, locks.Mark(context.Background(), "device-a", "2026-03-13", devicelock.KindIn))
	svc := newTestService(locks, &recordingSubmitter{}, friday)

	_, err := svc.CheckOut(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	assert.NoError(t, err)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := newTestService(newMemLocks(), &recordingSubmitter{}, mondayAt(15, 0))

	_, err := svc.CheckOut(authedContext(t), "device-a", photoRequest(schoolLat, schoolLng))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	locks := newMemLocks()
	ctx := authedContext(t)
	require.NoError(t, locks.Mark(context.Background(), "device-a", "2026-03-09", devicelock.KindIn))
	svc := newTestService(locks, &recordingSubmitter{}, mondayAt(15, 0))

	_, err := svc.CheckOut(ctx, "device-a", photoRequest(schoolLat, schoolLng))
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "device-a", photoRequest(schoolLat, schoolLng))
	assert.ErrorIs(t, err, attendance.ErrDeviceAlreadyCheckedOut)
}

func TestStatusStateMachine(t *testing.T) {
	locks := newMemLocks()
	ctx := authedContext(t)
	svc := newTestService(locks, &recordingSubmitter{}, mondayAt(7, 0))

	status, err := svc.Status(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusIdle, status.Status)
	assert.True(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)
	assert.Equal(t, "14:45", status.CheckoutTime)

	_, err = svc.CheckIn(ctx, "device-a", photoRequest(schoolLat, schoolLng))
	require.NoError(t, err)

	status, err = svc.Status(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status.Status)
	assert.False(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut, "checkout window not open at 07:00")

	afternoon := newTestService(locks, &recordingSubmitter{}, mondayAt(15, 0))
	status, err = afternoon.Status(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status.Status)
	assert.True(t, status.CanCheckOut)

	_, err = afternoon.CheckOut(ctx, "device-a", photoRequest(schoolLat, schoolLng))
	require.NoError(t, err)

	status, err = afternoon.Status(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOut, status.Status)
	assert.False(t, status.CanCheckIn)
	assert.False(t, status.CanCheckOut)
}
