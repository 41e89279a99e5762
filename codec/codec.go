// Package codec provides typed osver.Codec adapters for the wire
// representations a version travels in.
package codec

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/reoring/osver"
	"github.com/reoring/osver/i18n"
)

// Wire returns a Codec over generic wire values (string, []any,
// map[string]any). Decode detects the shape. Encode emits format; with the
// empty format it reads the context (osver.WithEncodingFormat) instead.
func Wire(format osver.EncodingFormat) osver.Codec[any] {
	return &wireCodec{format: format}
}

type wireCodec struct {
	format osver.EncodingFormat
}

func (c *wireCodec) Decode(_ context.Context, a any) (osver.Version, error) {
	return osver.Decode(a)
}

func (c *wireCodec) Encode(ctx context.Context, v osver.Version) (any, error) {
	if c.format == "" {
		return osver.EncodeContext(ctx, v)
	}
	return osver.Encode(v, c.format)
}

func (c *wireCodec) DecodeWithMeta(_ context.Context, a any) (osver.Decoded, error) {
	return osver.DecodeWithMeta(a)
}

func (c *wireCodec) EncodePreserving(_ context.Context, d osver.Decoded) (any, error) {
	return osver.EncodePreserving(d)
}

// Text returns a Codec over "major.minor[.patch]" strings using the lenient
// osver.Parse.
func Text() osver.Codec[string] { return textCodec{parse: osver.Parse} }

// StrictText returns a Codec over strings using osver.ParseStrict.
func StrictText() osver.Codec[string] { return textCodec{parse: osver.ParseStrict} }

type textCodec struct {
	parse func(string) (osver.Version, error)
}

func (c textCodec) Decode(_ context.Context, a string) (osver.Version, error) {
	v, err := c.parse(a)
	if err != nil {
		return osver.Version{}, rootIssue(err, -1)
	}
	return v, nil
}

func (c textCodec) Encode(_ context.Context, v osver.Version) (string, error) {
	return v.String(), nil
}

func (c textCodec) DecodeWithMeta(ctx context.Context, a string) (osver.Decoded, error) {
	v, err := c.Decode(ctx, a)
	if err != nil {
		return osver.Decoded{}, err
	}
	parts := strings.FieldsFunc(a, func(r rune) bool { return r == '.' })
	patch := osver.PresenceDefaultApplied
	if len(parts) > 2 {
		if _, perr := strconv.Atoi(parts[2]); perr == nil {
			patch = osver.PresenceSeen
		}
	}
	return osver.Decoded{Value: v, Format: osver.FormatString, Presence: osver.PresenceMap{
		"/" + osver.KeyMajor: osver.PresenceSeen,
		"/" + osver.KeyMinor: osver.PresenceSeen,
		"/" + osver.KeyPatch: patch,
	}}, nil
}

func (c textCodec) EncodePreserving(ctx context.Context, d osver.Decoded) (string, error) {
	return c.Encode(ctx, d.Value)
}

// Ints returns a Codec over positional integer slices of length 2 or 3.
// Encode always emits three components.
func Ints() osver.Codec[[]int] { return intsCodec{} }

type intsCodec struct{}

func (intsCodec) Decode(_ context.Context, a []int) (osver.Version, error) {
	v, err := osver.FromInts(a)
	if err != nil {
		return osver.Version{}, rootIssue(err, len(a))
	}
	return v, nil
}

func (intsCodec) Encode(_ context.Context, v osver.Version) ([]int, error) {
	return []int{v.Major(), v.Minor(), v.Patch()}, nil
}

func (c intsCodec) DecodeWithMeta(_ context.Context, a []int) (osver.Decoded, error) {
	return osver.DecodeWithMeta(a)
}

func (c intsCodec) EncodePreserving(ctx context.Context, d osver.Decoded) ([]int, error) {
	return c.Encode(ctx, d.Value)
}

// rootIssue lifts a *osver.ParseError into a single issue at "/". got is
// the component count, or -1 when unknown.
func rootIssue(err error, got int) osver.Issues {
	code := osver.CodeParseError
	switch {
	case errors.Is(err, osver.ErrInvalidArrayLength):
		code = osver.CodeInvalidArrayLength
	case errors.Is(err, osver.ErrInvalidNumbers):
		code = osver.CodeInvalidNumbers
	case errors.Is(err, osver.ErrInvalidFormat):
		code = osver.CodeInvalidFormat
	}
	it := osver.Issue{Path: "/", Code: code, Cause: err, Offset: -1}
	if got >= 0 {
		it.Params = map[string]any{"got": got}
		it.Message = i18n.T(code, map[string]string{"got": strconv.Itoa(got)})
	} else {
		it.Message = i18n.T(code, nil)
	}
	return osver.Issues{it}
}
