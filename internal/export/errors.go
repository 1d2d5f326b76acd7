// Package export turns a rendered resume into an A4 PDF, either by rasterizing the page in a
// headless browser and slicing the raster into pages, or by asking the browser to print it.
package export

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when an export is requested while another one is running.
var ErrExportInProgress = errors.New("an export is already in progress")

// ErrUnknownMode is returned for an export mode other than raster or print.
var ErrUnknownMode = errors.New("unknown export mode")

// Error represents a recoverable export failure. The document is never affected.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error (%s): %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error (%s): %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
