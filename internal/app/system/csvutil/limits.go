// internal/app/system/csvutil/limits.go
package csvutil

import "errors"

// Upload size and row limits for CSV processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 2000
)

// ErrTooManyRows is returned when a CSV exceeds ParseOptions.MaxRows.
var ErrTooManyRows = errors.New("csv exceeds the maximum row count")

// ParseOptions controls parsing limits.
type ParseOptions struct {
	// MaxRows caps data rows (0 = unlimited).
	MaxRows int
}

// RowError describes one rejected row.
type RowError struct {
	Line   int
	Reason string
}
