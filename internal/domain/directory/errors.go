package directory

import "errors"

var (
	ErrPersonNotFound = errors.New("person not found in directory")
)
