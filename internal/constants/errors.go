package constants

import "errors"

// Configuration errors.
var (
	ErrNoPasswordConfigured = errors.New("no password configured, set REDIS_ENTERPRISE_PASSWORD or pass --password")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
)

// Argument errors.
var (
	ErrInvalidUID       = errors.New("UID must be a non-negative integer")
	ErrInvalidJSONBody  = errors.New("body must be valid JSON")
	ErrOutputFileExists = errors.New("output file already exists, use --force to overwrite")
)

// Sink errors.
var (
	ErrSinkNotConnected = errors.New("NATS sink is not connected")
	ErrSubjectRequired  = errors.New("NATS subject is required")
)
