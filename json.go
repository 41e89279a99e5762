package osver

import (
	"bytes"
	"context"
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

var (
	_ json.Marshaler   = Version{}
	_ json.Unmarshaler = (*Version)(nil)
	_ json.Marshaler   = Formatted{}
	_ json.Unmarshaler = (*Formatted)(nil)
)

// objectWire fixes the key order of the object shape.
type objectWire struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`
}

// MarshalJSON renders v in the requested shape using go-json.
func MarshalJSON(v Version, f EncodingFormat) ([]byte, error) {
	switch f.orDefault() {
	case FormatString:
		return gojson.Marshal(v.String())
	case FormatArray:
		return gojson.Marshal(v.ints())
	case FormatObject:
		return gojson.Marshal(objectWire{Major: v.major, Minor: v.minor, Patch: v.patch})
	}
	_, err := Encode(v, f)
	return nil, err
}

// MarshalJSON implements json.Marshaler with the object shape.
func (v Version) MarshalJSON() ([]byte, error) {
	return MarshalJSON(v, DefaultEncodingFormat)
}

// UnmarshalJSON implements json.Unmarshaler. Any accepted shape is read
// through the current JSONDriver with DefaultParseOpt, so duplicate keys are
// rejected and integers keep full precision. A JSON null leaves v unchanged.
func (v *Version) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		return nil
	}
	got, err := DecodeFrom(context.Background(), JSONBytes(data), DefaultParseOpt())
	if err != nil {
		return err
	}
	*v = got
	return nil
}

// Formatted pairs a version with the shape it is (or was) encoded in.
// Unmarshaling records the detected shape, so a round trip keeps it.
type Formatted struct {
	Version Version
	Format  EncodingFormat
}

// MarshalJSON implements json.Marshaler in f.Format.
func (f Formatted) MarshalJSON() ([]byte, error) {
	return MarshalJSON(f.Version, f.Format)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Formatted) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		return nil
	}
	d, err := DecodeFromWithMeta(context.Background(), JSONBytes(data), DefaultParseOpt())
	if err != nil {
		return err
	}
	f.Version, f.Format = d.Value, d.Format
	return nil
}

// String returns the canonical text form of the version.
func (f Formatted) String() string { return f.Version.String() }

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
