package osver

import "github.com/BurntSushi/toml"

var _ toml.Unmarshaler = (*Version)(nil)

// UnmarshalTOML implements toml.Unmarshaler. The decoded TOML value (string,
// array or table) goes through Decode. Encoding to TOML uses MarshalText,
// so versions are written as "major.minor.patch" strings.
func (v *Version) UnmarshalTOML(data any) error {
	got, err := Decode(data)
	if err != nil {
		return err
	}
	*v = got
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler and records the detected shape.
func (f *Formatted) UnmarshalTOML(data any) error {
	d, err := DecodeWithMeta(data)
	if err != nil {
		return err
	}
	f.Version, f.Format = d.Value, d.Format
	return nil
}
