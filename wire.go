package osver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Encode renders v as a generic wire value in the requested shape:
// string, []any of three ints, or map[string]any keyed major/minor/patch.
// The empty format selects DefaultEncodingFormat.
func Encode(v Version, f EncodingFormat) (any, error) {
	switch f.orDefault() {
	case FormatString:
		return v.String(), nil
	case FormatArray:
		return []any{v.major, v.minor, v.patch}, nil
	case FormatObject:
		return map[string]any{KeyMajor: v.major, KeyMinor: v.minor, KeyPatch: v.patch}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// EncodeContext encodes v in the format carried by ctx (see
// WithEncodingFormat).
func EncodeContext(ctx context.Context, v Version) (any, error) {
	return Encode(v, EncodingFormatFrom(ctx))
}

// Decode reads a version from a generic wire value, detecting its shape:
//
//  1. a string goes through ParseStrict;
//  2. a sequence must hold 2 or 3 integers;
//  3. a mapping must carry integer major and minor keys, patch optional.
//
// A json.RawMessage is read as a JSON document (see DecodeFrom). Other byte
// slices and anything else are an invalid_type issue at "/". Once a shape is chosen its
// failure is final. Errors are Issues and match ErrDataCorrupted.
func Decode(raw any) (Version, error) {
	d, err := DecodeWithMeta(raw)
	return d.Value, err
}

// DecodeWithMeta is Decode plus the detected shape and patch presence.
func DecodeWithMeta(raw any) (Decoded, error) {
	switch t := raw.(type) {
	case string:
		return decodeString(t)
	case json.RawMessage:
		return DecodeFromWithMeta(context.Background(), JSONBytes(t))
	case []byte:
		return Decoded{}, Issues{rootPath.Issue(CodeInvalidType, nil, "expected", "string, array or object", "got", "bytes")}
	case []any:
		return decodeSequence(len(t), func(i int) any { return t[i] })
	case []int:
		v, err := FromInts(t)
		if err != nil {
			return Decoded{}, parseErrorIssues(err, len(t))
		}
		return Decoded{Value: v, Format: FormatArray, Presence: positionalPresence(len(t))}, nil
	case map[string]any:
		return decodeObject(func(k string) (any, bool) { x, ok := t[k]; return x, ok })
	case map[any]any:
		return decodeObject(func(k string) (any, bool) { x, ok := t[k]; return x, ok })
	case nil:
		return Decoded{}, Issues{rootPath.Issue(CodeInvalidType, nil, "expected", "string, array or object", "got", "null")}
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.String:
		return decodeString(rv.String())
	case reflect.Slice, reflect.Array:
		return decodeSequence(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Map:
		if k := rv.Type().Key().Kind(); k == reflect.String || k == reflect.Interface {
			return decodeObject(func(key string) (any, bool) { return mapIndex(rv, key) })
		}
	}
	return Decoded{}, Issues{rootPath.Issue(CodeInvalidType, nil, "expected", "string, array or object", "got", fmt.Sprintf("%T", raw))}
}

// EncodePreserving re-encodes d.Value in the shape it was decoded from.
// The patch component is always emitted.
func EncodePreserving(d Decoded) (any, error) {
	return Encode(d.Value, d.Format)
}

func decodeString(s string) (Decoded, error) {
	v, err := ParseStrict(s)
	if err != nil {
		return Decoded{}, parseErrorIssues(err, -1)
	}
	return Decoded{Value: v, Format: FormatString, Presence: positionalPresence(len(components(s)))}, nil
}

func decodeSequence(n int, at func(int) any) (Decoded, error) {
	var iss Issues
	nums := make([]int, 0, n)
	for i := 0; i < n; i++ {
		x, ok := toInt(at(i))
		if !ok {
			iss = AppendIssues(iss, rootPath.Index(i).Issue(CodeInvalidType, nil, "expected", "integer", "got", describe(at(i))))
			continue
		}
		nums = append(nums, x)
	}
	if len(iss) > 0 {
		return Decoded{}, iss
	}
	v, err := FromInts(nums)
	if err != nil {
		return Decoded{}, parseErrorIssues(err, n)
	}
	return Decoded{Value: v, Format: FormatArray, Presence: positionalPresence(n)}, nil
}

func decodeObject(get func(string) (any, bool)) (Decoded, error) {
	lookup := func(key, legacy string) (any, bool) {
		if x, ok := get(key); ok {
			return x, true
		}
		return get(legacy)
	}
	var iss Issues
	pm := PresenceMap{}

	required := func(key, legacy string) int {
		p := rootPath.Field(key)
		x, ok := lookup(key, legacy)
		switch {
		case !ok:
			iss = AppendIssues(iss, p.Issue(CodeRequired, nil, "key", key))
			return 0
		case x == nil:
			pm[p.Pointer()] = PresenceSeen | PresenceWasNull
			iss = AppendIssues(iss, p.Issue(CodeInvalidType, nil, "expected", "integer", "got", "null"))
			return 0
		}
		pm[p.Pointer()] = PresenceSeen
		n, ok := toInt(x)
		if !ok {
			iss = AppendIssues(iss, p.Issue(CodeInvalidType, nil, "expected", "integer", "got", describe(x)))
		}
		return n
	}
	major := required(KeyMajor, LegacyKeyMajor)
	minor := required(KeyMinor, LegacyKeyMinor)

	patch := 0
	pp := rootPath.Field(KeyPatch)
	switch x, ok := lookup(KeyPatch, LegacyKeyPatch); {
	case !ok:
		pm[pp.Pointer()] = PresenceDefaultApplied
	case x == nil:
		pm[pp.Pointer()] = PresenceSeen | PresenceWasNull | PresenceDefaultApplied
	default:
		pm[pp.Pointer()] = PresenceSeen
		n, ok := toInt(x)
		if !ok {
			iss = AppendIssues(iss, pp.Issue(CodeInvalidType, nil, "expected", "integer", "got", describe(x)))
		}
		patch = n
	}

	if len(iss) > 0 {
		return Decoded{}, iss
	}
	return Decoded{Value: New(major, minor, patch), Format: FormatObject, Presence: pm}, nil
}

// parseErrorIssues lifts a *ParseError into a single root issue.
func parseErrorIssues(err error, got int) Issues {
	code := codeForParseError(err)
	if got >= 0 {
		return Issues{rootPath.Issue(code, err, "got", got)}
	}
	return Issues{rootPath.Issue(code, err)}
}

// toInt accepts Go integers (overflow checked), json.Number integer text and
// integral floats within the int range.
func toInt(x any) (int, bool) {
	switch t := x.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		if int64(int(t)) != t {
			return 0, false
		}
		return int(t), true
	case uint:
		if t > math.MaxInt {
			return 0, false
		}
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		if uint64(t) > math.MaxInt {
			return 0, false
		}
		return int(t), true
	case uint64:
		if t > math.MaxInt {
			return 0, false
		}
		return int(t), true
	case json.Number:
		return numberToInt(string(t))
	case float64:
		return floatToInt(t)
	case float32:
		return floatToInt(float64(t))
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// -float64(math.MinInt) is the first float above the int range.
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, false
	}
	return int(f), true
}

// numberToInt converts a JSON number literal to int without going through
// float64, so "9007199254740993.0" stays exact and "1.5" or "1e400" fail.
func numberToInt(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	neg := strings.HasPrefix(s, "-")
	mant, exp := strings.TrimPrefix(s, "-"), "0"
	if i := strings.IndexAny(mant, "eE"); i >= 0 {
		mant, exp = mant[:i], mant[i+1:]
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return 0, false
	}
	whole, frac, _ := strings.Cut(mant, ".")
	digits := whole + frac
	if whole == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, false
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, true
	}
	if e < -1<<20 || e > 1<<20 {
		return 0, false
	}
	sig := strings.TrimRight(digits, "0")
	e += len(digits) - len(sig) - len(frac)
	// 19 digits is the widest int64.
	if e < 0 || len(sig)+e > 19 {
		return 0, false
	}
	lit := sig + strings.Repeat("0", e)
	if neg {
		lit = "-" + lit
	}
	n, err := strconv.Atoi(lit)
	return n, err == nil
}

func mapIndex(m reflect.Value, key string) (any, bool) {
	kv := reflect.ValueOf(key)
	if m.Type().Key().Kind() == reflect.String {
		kv = kv.Convert(m.Type().Key())
	}
	v := m.MapIndex(kv)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func describe(x any) string {
	switch x.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float32, float64:
		return "number"
	case []any:
		return "array"
	case []byte:
		return "bytes"
	case map[string]any, map[any]any:
		return "object"
	}
	return fmt.Sprintf("%T", x)
}

