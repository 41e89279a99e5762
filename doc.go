// Package osver provides an immutable operating system version value
// (major.minor.patch) with ordering, hashing, text parsing, and structured
// encoding in three wire shapes.
//
// Wire shapes:
//
//   - string: "1.2.3" (2 or 3 components accepted on input)
//   - array:  [1, 2, 3] or [1, 2]
//   - object: {"major": 1, "minor": 2, "patch": 3} (patch optional on input)
//
// Encoding selects the shape explicitly (Encode, MarshalJSON, Formatted) or
// through the context (WithEncodingFormat + EncodeContext). Decoding detects
// the shape: a string is tried first, then an integer sequence, then a keyed
// mapping. Failures are reported as Issues carrying a JSON Pointer, a code
// and the underlying cause.
//
// Two text entry points exist on purpose:
//
//   - Parse is lenient: an unparsable patch component becomes 0.
//   - ParseStrict (used by Decode for string input) rejects any
//     non-numeric component and any component count outside [2,3].
//
// Typical usage:
//
//	v, err := osver.Parse("14.2")
//	wire, err := osver.Encode(v, osver.FormatArray)    // []any{14, 2, 0}
//	back, err := osver.Decode(wire)                    // 14.2.0
//	data, err := osver.MarshalJSON(v, osver.FormatString)
//
// Layout: public API lives in the root package, token engines and YAML node
// handling under internal/, typed codecs under codec/, host probing under
// hostos/, and the CLI under cmd/osver.
package osver
