package zpl

import "errors"

// Error kinds returned by this package. Concrete errors wrap one of these, so
// callers should test with errors.Is.
var (
	// ErrConfiguration reports invalid client construction arguments.
	ErrConfiguration = errors.New("zpl: invalid configuration")
	// ErrValidation reports an invalid drawing parameter.
	ErrValidation = errors.New("zpl: invalid parameter")
	// ErrFormat reports a malformed or unsupported bitmap.
	ErrFormat = errors.New("zpl: unsupported bitmap")
	// ErrConnection reports a failure to establish a connection to the printer.
	ErrConnection = errors.New("zpl: connection failed")
	// ErrTransport reports a failure while delivering a document.
	ErrTransport = errors.New("zpl: transport failed")
)
