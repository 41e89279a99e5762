package osver

import (
	"context"
	"errors"
)

// Codec performs bidirectional transformation between a wire
// representation A and Version. Implementations live in the codec package.
type Codec[A any] interface {
	Decode(ctx context.Context, a A) (Version, error)
	Encode(ctx context.Context, v Version) (A, error)
	// DecodeWithMeta returns the value together with shape and presence
	// metadata (enabling preserving encode).
	DecodeWithMeta(ctx context.Context, a A) (Decoded, error)
	// EncodePreserving emits output in the shape recorded by DecodeWithMeta.
	EncodePreserving(ctx context.Context, d Decoded) (A, error)
}

// EncodeMode exposes canonical vs preserving output intent at call sites.
type EncodeMode int

const (
	EncodeCanonical EncodeMode = iota
	EncodePreserve
)

// ErrEncodePreserveRequiresPresence indicates EncodePreserve was requested
// without decode metadata. Use EncodeWithDecoded instead.
var ErrEncodePreserveRequiresPresence = errors.New("osver: encode preserve requires decode metadata; supply Decoded via EncodeWithDecoded")

// EncodeWithMode encodes v using the given mode. EncodePreserve always fails
// with ErrEncodePreserveRequiresPresence because a bare Version carries no
// shape.
func EncodeWithMode[A any](ctx context.Context, c Codec[A], v Version, mode EncodeMode) (A, error) {
	if mode == EncodePreserve {
		var zero A
		return zero, ErrEncodePreserveRequiresPresence
	}
	return c.Encode(ctx, v)
}

// EncodeWithDecoded encodes d using the given mode. EncodePreserve calls
// c.EncodePreserving; EncodeCanonical falls back to c.Encode.
func EncodeWithDecoded[A any](ctx context.Context, c Codec[A], d Decoded, mode EncodeMode) (A, error) {
	switch mode {
	case EncodePreserve:
		return c.EncodePreserving(ctx, d)
	default:
		return c.Encode(ctx, d.Value)
	}
}

// SafeDecode decodes a with c, returning (zero, false) on error.
func SafeDecode[A any](ctx context.Context, c Codec[A], a A) (Version, bool) {
	v, err := c.Decode(ctx, a)
	if err != nil {
		return Version{}, false
	}
	return v, true
}
