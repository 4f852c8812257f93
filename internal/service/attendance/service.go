package attendance

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/attendance"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/devicelock"
	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/submission"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/geo"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/schedule"
)

type AttendanceServiceImpl struct {
	locks     devicelock.Store
	submitter submission.Service
	fence     geo.Fence
	rules     schedule.Rules
	now       func() time.Time

	// The lock file is read-check-write; serialize per device so two racing
	// requests cannot both read an unlocked state and both submit.
	mu      sync.Mutex
	devices map[string]*sync.Mutex
}

// deviceMutex returns the mutex guarding one device's lock file, creating it
// on first use.
func (a *AttendanceServiceImpl) deviceMutex(deviceID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.devices == nil {
		a.devices = make(map[string]*sync.Mutex)
	}
	m, ok := a.devices[deviceID]
	if !ok {
		m = &sync.Mutex{}
		a.devices[deviceID] = m
	}
	return m
}

func NewAttendanceService(locks devicelock.Store, submitter submission.Service, fence geo.Fence, rules schedule.Rules) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		locks:     locks,
		submitter: submitter,
		fence:     fence,
		rules:     rules,
		now:       time.Now,
	}
}

// attendancePayload is the data block of an ATTENDANCE envelope. Field names
// follow the web app's script, which is why they are camelCase.
type attendancePayload struct {
	Type        string  `json:"type"`
	Timestamp   string  `json:"timestamp"`
	Location    string  `json:"location"`
	Distance    float64 `json:"distance"`
	PhotoBase64 string  `json:"photoBase64"`
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, deviceID string) (attendance.StatusResponse, error) {
	now := a.now()
	date := devicelock.DateKey(now)

	lock, err := a.locks.Get(ctx, deviceID, date)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to read device lock: %w", err)
	}

	status := attendance.StatusFromLock(lock)
	checkoutOpen := a.rules.IsCheckoutOpen(now)

	return attendance.StatusResponse{
		Status:           status,
		DeviceLockedIn:   lock.CheckedIn,
		DeviceLockedOut:  lock.CheckedOut,
		CanCheckIn:       !lock.CheckedIn,
		CanCheckOut:      lock.CheckedIn && !lock.CheckedOut && checkoutOpen,
		CheckoutOpen:     checkoutOpen,
		CheckoutTime:     a.rules.CheckoutThreshold(now.Weekday()).String(),
		LateIfCheckInNow: a.rules.IsLate(now),
		ServerTime:       now.Format(time.RFC3339),
		Date:             date,
	}, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, deviceID string, req attendance.CheckRequest) (attendance.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResponse{}, err
	}

	// Held through submit and mark: the lock check only gates once the
	// previous request on the same device has marked its result.
	dm := a.deviceMutex(deviceID)
	dm.Lock()
	defer dm.Unlock()

	now := a.now()
	date := devicelock.DateKey(now)

	lock, err := a.locks.Get(ctx, deviceID, date)
	if err != nil {
		return attendance.CheckResponse{}, fmt.Errorf("failed to read device lock: %w", err)
	}
	if lock.CheckedIn {
		return attendance.CheckResponse{}, attendance.ErrDeviceAlreadyCheckedIn
	}

	// Geofence runs before anything leaves the process; an out-of-radius fix
	// is never submitted.
	fix := a.fence.Check(*req.Latitude, *req.Longitude)
	if !fix.Within {
		return attendance.CheckResponse{}, &attendance.OutsideRadiusError{DistanceMeters: fix.DistanceMeters}
	}

	late := a.rules.IsLate(now)

	delivery, err := a.submit(ctx, attendance.KindIn, now, req, fix.DistanceMeters)
	if err != nil {
		return attendance.CheckResponse{}, err
	}

	// The envelope is gone; locking the device now is what prevents a retry
	// from double-submitting. A failed mark only costs us the lock, so log it
	// rather than failing the whole check-in after the fact.
	if err := a.locks.Mark(ctx, deviceID, date, devicelock.KindIn); err != nil {
		slog.Warn("failed to mark device lock after check-in", "device", deviceID, "error", err)
	}

	return attendance.CheckResponse{
		Kind:              attendance.KindIn,
		Timestamp:         now.Format(time.RFC3339),
		DistanceMeters:    fix.DistanceMeters,
		Late:              &late,
		Status:            attendance.StatusPresent,
		DeliveryConfirmed: delivery.Confirmed,
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, deviceID string, req attendance.CheckRequest) (attendance.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResponse{}, err
	}

	dm := a.deviceMutex(deviceID)
	dm.Lock()
	defer dm.Unlock()

	now := a.now()
	date := devicelock.DateKey(now)

	lock, err := a.locks.Get(ctx, deviceID, date)
	if err != nil {
		return attendance.CheckResponse{}, fmt.Errorf("failed to read device lock: %w", err)
	}
	if !lock.CheckedIn {
		return attendance.CheckResponse{}, attendance.ErrNotCheckedIn
	}
	if lock.CheckedOut {
		return attendance.CheckResponse{}, attendance.ErrDeviceAlreadyCheckedOut
	}
	if !a.rules.IsCheckoutOpen(now) {
		return attendance.CheckResponse{}, attendance.ErrCheckoutNotOpen
	}

	fix := a.fence.Check(*req.Latitude, *req.Longitude)
	if !fix.Within {
		return attendance.CheckResponse{}, &attendance.OutsideRadiusError{DistanceMeters: fix.DistanceMeters}
	}

	delivery, err := a.submit(ctx, attendance.KindOut, now, req, fix.DistanceMeters)
	if err != nil {
		return attendance.CheckResponse{}, err
	}

	if err := a.locks.Mark(ctx, deviceID, date, devicelock.KindOut); err != nil {
		slog.Warn("failed to mark device lock after check-out", "device", deviceID, "error", err)
	}

	return attendance.CheckResponse{
		Kind:              attendance.KindOut,
		Timestamp:         now.Format(time.RFC3339),
		DistanceMeters:    fix.DistanceMeters,
		Status:            attendance.StatusOut,
		DeliveryConfirmed: delivery.Confirmed,
	}, nil
}

func (a *AttendanceServiceImpl) submit(ctx context.Context, kind attendance.Kind, now time.Time, req attendance.CheckRequest, distance float64) (submission.Delivery, error) {
	user, err := submitterFromContext(ctx)
	if err != nil {
		return submission.Delivery{}, err
	}

	photo, err := encodePhoto(req.File, req.FileHeader)
	if err != nil {
		return submission.Delivery{}, fmt.Errorf("failed to read selfie photo: %w", err)
	}

	return a.submitter.Submit(ctx, submission.Envelope{
		Action: submission.ActionAttendance,
		User:   user,
		Data: attendancePayload{
			Type:        string(kind),
			Timestamp:   now.Format(time.RFC3339),
			Location:    fmt.Sprintf("%v, %v", *req.Latitude, *req.Longitude),
			Distance:    distance,
			PhotoBase64: photo,
		},
	})
}

func submitterFromContext(ctx context.Context) (submission.SubmitterInfo, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return submission.SubmitterInfo{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	name, _ := claims["name"].(string)
	nip, _ := claims["nip"].(string)
	role, _ := claims["role"].(string)
	return submission.SubmitterInfo{Name: name, NIP: nip, Role: role}, nil
}

// encodePhoto turns the uploaded photo into the base64 data URL the web app
// stores.
func encodePhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
