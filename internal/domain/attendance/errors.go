package attendance

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDeviceAlreadyCheckedIn  = errors.New("this device has already checked in today")
	ErrDeviceAlreadyCheckedOut = errors.New("this device has already checked out today")
	ErrNotCheckedIn            = errors.New("you have not checked in yet")
	ErrCheckoutNotOpen         = errors.New("checkout time has not been reached")
)

// OutsideRadiusError rejects a coordinate outside the school geofence. The
// message wording is part of the client contract.
type OutsideRadiusError struct {
	DistanceMeters float64
}

func (e *OutsideRadiusError) Error() string {
	return fmt.Sprintf("Jarak Anda (%dm) di luar radius sekolah.", int(math.Round(e.DistanceMeters)))
}
