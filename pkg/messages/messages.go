package messages

import "errors"

const (
	CouldNotFindId      = "couldn't find the %s id"
	FiltersNotNil       = "filters can't be nil"
	InvalidIdMsg        = "invalid %s id"
	OperationInProgress = "operation already in progress, please wait"
	UnauthorizedMsg     = "authentication required"
)

var (
	ErrCircuitNotFound     = errors.New("circuit not found")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrRaceNotFound        = errors.New("race not found")
	ErrLapNotFound         = errors.New("lap not found")
	ErrInvalidLapTime      = errors.New("lap time must be greater than zero")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrMissingCoordinates  = errors.New("circuit has no coordinates")
	ErrReferencedRecord    = errors.New("record is referenced by other records")
	ErrDuplicateRecord     = errors.New("record already exists")
	ErrUnknownReference    = errors.New("referenced record does not exist")
	ErrInvalidOperatingDay = errors.New("invalid operating hours")
	ErrInvalidTimezone     = errors.New("unknown timezone")
	ErrInvalidFolder       = errors.New("unknown upload folder")
	ErrWeakPassword        = errors.New("password must have at least 8 characters")
)
