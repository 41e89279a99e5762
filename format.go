package osver

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EncodingFormat selects the wire shape produced by encoding.
type EncodingFormat string

const (
	FormatString EncodingFormat = "string" // "1.2.3"
	FormatObject EncodingFormat = "object" // {"major":1,"minor":2,"patch":3}
	FormatArray  EncodingFormat = "array"  // [1,2,3]

	// DefaultEncodingFormat is used when no format is selected.
	DefaultEncodingFormat = FormatObject
)

// ErrUnknownFormat reports an EncodingFormat outside string/object/array.
var ErrUnknownFormat = errors.New("osver: unknown encoding format")

// Formats lists the supported encoding formats.
func Formats() []EncodingFormat {
	return []EncodingFormat{FormatString, FormatObject, FormatArray}
}

// String implements fmt.Stringer.
func (f EncodingFormat) String() string { return string(f) }

// Valid reports whether f is one of the supported formats.
func (f EncodingFormat) Valid() bool {
	switch f {
	case FormatString, FormatObject, FormatArray:
		return true
	}
	return false
}

// orDefault maps the empty format onto DefaultEncodingFormat.
func (f EncodingFormat) orDefault() EncodingFormat {
	if f == "" {
		return DefaultEncodingFormat
	}
	return f
}

// ParseEncodingFormat reads a format name case-insensitively. The empty
// string yields DefaultEncodingFormat.
func ParseEncodingFormat(s string) (EncodingFormat, error) {
	f := EncodingFormat(strings.ToLower(strings.TrimSpace(s))).orDefault()
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f EncodingFormat) MarshalText() ([]byte, error) { return []byte(f.orDefault()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *EncodingFormat) UnmarshalText(text []byte) error {
	got, err := ParseEncodingFormat(string(text))
	if err != nil {
		return err
	}
	*f = got
	return nil
}

type contextKey int

const (
	_ctxKeyEncodingFormat contextKey = iota
)

// WithEncodingFormat returns a child context carrying the encoding format
// used by EncodeContext.
func WithEncodingFormat(ctx context.Context, f EncodingFormat) context.Context {
	return context.WithValue(ctx, _ctxKeyEncodingFormat, f)
}

// EncodingFormatFrom returns the format stored in ctx, or
// DefaultEncodingFormat when none is set.
func EncodingFormatFrom(ctx context.Context) EncodingFormat {
	if ctx == nil {
		return DefaultEncodingFormat
	}
	f, _ := ctx.Value(_ctxKeyEncodingFormat).(EncodingFormat)
	return f.orDefault()
}
