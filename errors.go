package osver

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidFormat      = "invalid_format"
	CodeInvalidNumbers     = "invalid_numbers"
	CodeInvalidArrayLength = "invalid_array_length"
	CodeInvalidType        = "invalid_type"
	CodeRequired           = "required"
	CodeDuplicateKey       = "duplicate_key"
	CodeParseError         = "parse_error"
	CodeTruncated          = "truncated"
)

var (
	// ErrInvalidFormat reports input without the minimum version shape: fewer
	// than two dotted components (Parse) or a non-numeric component
	// (ParseStrict).
	ErrInvalidFormat = errors.New("osver: invalid version format")
	// ErrInvalidNumbers reports a major or minor component that is not an
	// integer (Parse only).
	ErrInvalidNumbers = errors.New("osver: invalid version numbers")
	// ErrInvalidArrayLength reports a component count outside [2,3].
	ErrInvalidArrayLength = errors.New("osver: invalid version component count")
	// ErrDataCorrupted matches every structured decode failure via errors.Is.
	ErrDataCorrupted = errors.New("osver: data corrupted")
)

// ParseError is returned by the text and integer-slice entry points.
// Err is one of the ErrInvalid* sentinels.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Issue represents a single decode failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /major or /2).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"got": 4}) for i18n.
	Params map[string]any
}

// Issues is a collection of decode errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /major: invalid type
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is makes every non-empty Issues match ErrDataCorrupted.
func (iss Issues) Is(target error) bool {
	return target == ErrDataCorrupted && len(iss) > 0
}

// Unwrap exposes the issue causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// Codes lists the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// codeForParseError maps a ParseError sentinel onto its issue code.
func codeForParseError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArrayLength):
		return CodeInvalidArrayLength
	case errors.Is(err, ErrInvalidNumbers):
		return CodeInvalidNumbers
	case errors.Is(err, ErrInvalidFormat):
		return CodeInvalidFormat
	default:
		return CodeParseError
	}
}
