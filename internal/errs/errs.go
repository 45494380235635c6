// Package errs holds the error taxonomy shared by the polling pipelines.
package errs

import "errors"

var (
	// ErrTransientFetch network failure or non-200 status, the source is skipped for this cycle
	ErrTransientFetch = errors.New("transient fetch error")
	// ErrParse missing or malformed field in a provider record, the record is skipped
	ErrParse = errors.New("parse error")
	// ErrDuplicateKey re-inserting an already known identifier
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotifyDelivery message could not be delivered, the alert decision stays committed
	ErrNotifyDelivery = errors.New("notify delivery error")
	// ErrConfig missing or invalid settings, fatal at startup
	ErrConfig = errors.New("invalid configuration")
)
