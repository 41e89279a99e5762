package osver

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/osver/internal/yamlsrc"
)

var (
	_ yaml.Marshaler   = Version{}
	_ yaml.Unmarshaler = (*Version)(nil)
	_ yaml.Marshaler   = Formatted{}
	_ yaml.Unmarshaler = (*Formatted)(nil)
)

// MarshalYAML implements yaml.Marshaler with the object shape.
func (v Version) MarshalYAML() (any, error) {
	return yamlValue(v, DefaultEncodingFormat)
}

// UnmarshalYAML implements yaml.Unmarshaler. Any non-null scalar takes the
// strict string path (YAML resolves 1.2 as a float, so the node text is
// used). Sequences and mappings follow Decode; duplicate mapping keys are a
// duplicate_key issue. A null node leaves v unchanged.
func (v *Version) UnmarshalYAML(n *yaml.Node) error {
	if yamlsrc.IsNull(n) {
		return nil
	}
	d, err := decodeYAMLNode(n)
	if err != nil {
		return err
	}
	*v = d.Value
	return nil
}

// MarshalYAML implements yaml.Marshaler in f.Format.
func (f Formatted) MarshalYAML() (any, error) {
	return yamlValue(f.Version, f.Format)
}

// UnmarshalYAML implements yaml.Unmarshaler and records the detected shape.
func (f *Formatted) UnmarshalYAML(n *yaml.Node) error {
	if yamlsrc.IsNull(n) {
		return nil
	}
	d, err := decodeYAMLNode(n)
	if err != nil {
		return err
	}
	f.Version, f.Format = d.Value, d.Format
	return nil
}

// ReadYAML decodes every document of a YAML stream. Empty documents are
// skipped. It stops at the first failure.
func ReadYAML(r io.Reader) ([]Version, error) {
	rd := yamlsrc.NewReader(r)
	var out []Version
	for {
		n, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, Issues{rootPath.Issue(CodeParseError, err)}
		}
		if yamlsrc.IsNull(n) {
			continue
		}
		d, err := decodeYAMLNode(n)
		if err != nil {
			return out, err
		}
		out = append(out, d.Value)
	}
}

func yamlValue(v Version, f EncodingFormat) (any, error) {
	switch f.orDefault() {
	case FormatString:
		return v.String(), nil
	case FormatArray:
		return v.ints(), nil
	case FormatObject:
		return objectWire{Major: v.major, Minor: v.minor, Patch: v.patch}, nil
	}
	return Encode(v, f)
}

func decodeYAMLNode(n *yaml.Node) (Decoded, error) {
	n = yamlsrc.Resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && !yamlsrc.IsNull(n) {
		return decodeString(n.Value)
	}
	raw, err := yamlsrc.ValueMaxDepth(n, DefaultParseOpt().MaxDepth)
	if err != nil {
		var dup *yamlsrc.DuplicateKeyError
		if errors.As(err, &dup) {
			return Decoded{}, Issues{{Path: dup.Path, Code: CodeDuplicateKey, Message: dup.Error(), Cause: err, Offset: -1,
				Params: map[string]any{"line": dup.Line, "column": dup.Col}}}
		}
		return Decoded{}, toIssues(err)
	}
	return DecodeWithMeta(raw)
}
