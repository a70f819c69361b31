package gpio

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// KindIO covers any failure to open, read or write a sysfs file:
	// pin not exported, permission denied, pin unknown to the platform,
	// transient filesystem errors.
	KindIO Kind = iota
	// KindParse means a value file held something that is not an
	// integer. Only Read can produce it.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Error is returned by every failing operation in this package. The
// underlying OS or parse error is preserved for diagnostics; nothing
// is retried or masked here, the caller decides severity.
type Error struct {
	Op   string
	Pin  int
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("gpio: %s pin %d: %v", e.Op, e.Pin, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsIO reports whether err is a gpio I/O failure.
func IsIO(err error) bool { return hasKind(err, KindIO) }

// IsParse reports whether err is a gpio parse failure.
func IsParse(err error) bool { return hasKind(err, KindParse) }

func hasKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
