package osver

import js "github.com/reoring/osver/jsonschema"

// VersionPattern matches the accepted string shape: two or three dotted
// integers, optionally signed. Runs of dots and leading or trailing dots
// are allowed since empty components are dropped.
const VersionPattern = `^\.*[+-]?[0-9]+\.+[+-]?[0-9]+(\.+[+-]?[0-9]+)?\.*$`

// JSONSchema describes the wire shape Encode produces for f. The empty format
// selects DefaultEncodingFormat.
func JSONSchema(f EncodingFormat) (*js.Schema, error) {
	switch f.orDefault() {
	case FormatString:
		return &js.Schema{Type: "string", Pattern: VersionPattern}, nil
	case FormatArray:
		return &js.Schema{Type: "array", Items: &js.Schema{Type: "integer"}, MinItems: js.Int(2), MaxItems: js.Int(3)}, nil
	case FormatObject:
		return &js.Schema{
			Type: "object",
			Properties: map[string]*js.Schema{
				KeyMajor: {Type: "integer"},
				KeyMinor: {Type: "integer"},
				KeyPatch: {Type: "integer", Default: 0},
			},
			Required: []string{KeyMajor, KeyMinor},
		}, nil
	}
	_, err := Encode(Version{}, f)
	return nil, err
}

// DecodeJSONSchema describes every shape Decode accepts.
func DecodeJSONSchema() *js.Schema {
	root := &js.Schema{
		Schema:      js.Draft,
		Title:       "OS version",
		Description: "major.minor[.patch] as a string, a 2-3 element integer array, or an object",
	}
	for _, f := range []EncodingFormat{FormatString, FormatArray, FormatObject} {
		s, _ := JSONSchema(f)
		root.OneOf = append(root.OneOf, s)
	}
	return root
}
