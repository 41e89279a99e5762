package osver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/reoring/osver"
	"github.com/reoring/osver/source/stdjson"
)

func TestMarshalJSON_Shapes(t *testing.T) {
	v := osver.New(1, 2, 3)
	cases := map[osver.EncodingFormat]string{
		osver.FormatString: `"1.2.3"`,
		osver.FormatArray:  `[1,2,3]`,
		osver.FormatObject: `{"major":1,"minor":2,"patch":3}`,
		"":                 `{"major":1,"minor":2,"patch":3}`,
	}
	for f, want := range cases {
		got, err := osver.MarshalJSON(v, f)
		if err != nil {
			t.Fatalf("MarshalJSON(%q): %v", f, err)
		}
		if string(got) != want {
			t.Fatalf("MarshalJSON(%q) = %s, want %s", f, got, want)
		}
	}
	if _, err := osver.MarshalJSON(v, "csv"); !errors.Is(err, osver.ErrUnknownFormat) {
		t.Fatalf("unknown format error = %v", err)
	}
}

func TestVersion_JSONInStruct(t *testing.T) {
	type host struct {
		Name string        `json:"name"`
		OS   osver.Version `json:"os"`
	}
	in := host{Name: "build-1", OS: osver.New(14, 4, 1)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"name":"build-1","os":{"major":14,"minor":4,"patch":1}}`; string(data) != want {
		t.Fatalf("json.Marshal = %s, want %s", data, want)
	}
	var out host
	if err := gojson.Unmarshal(data, &out); err != nil {
		t.Fatalf("go-json Unmarshal: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVersion_UnmarshalJSON_AllShapes(t *testing.T) {
	cases := []struct {
		in   string
		want osver.Version
	}{
		{`"10.15.7"`, osver.New(10, 15, 7)},
		{`[11, 2]`, osver.New(11, 2, 0)},
		{`{"major": 12, "minor": 0}`, osver.New(12, 0, 0)},
		{`{"majorVersion":9,"minorVersion":3,"patchVersion":1}`, osver.New(9, 3, 1)},
		{` [ 1 , 2 , 3 ] `, osver.New(1, 2, 3)},
		{`[9223372036854775807, -9223372036854775808, 0]`, osver.New(math.MaxInt, math.MinInt, 0)},
	}
	for _, c := range cases {
		var v osver.Version
		if err := v.UnmarshalJSON([]byte(c.in)); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", c.in, err)
		}
		if v != c.want {
			t.Fatalf("UnmarshalJSON(%s) = %v, want %v", c.in, v, c.want)
		}
	}
}

func TestVersion_UnmarshalJSON_NullKeepsValue(t *testing.T) {
	v := osver.New(1, 2, 3)
	if err := v.UnmarshalJSON([]byte(" null ")); err != nil {
		t.Fatal(err)
	}
	if v != osver.New(1, 2, 3) {
		t.Fatalf("null must leave the value unchanged, got %v", v)
	}
}

func TestVersion_UnmarshalJSON_Failures(t *testing.T) {
	cases := []struct {
		in   string
		code string
		path string
	}{
		{`{"major":1,"major":2,"minor":3}`, osver.CodeDuplicateKey, "/major"},
		{`"1.2.3" "4.5.6"`, osver.CodeParseError, "/"},
		{`{"major":1`, osver.CodeParseError, "/"},
		{`[1,2,3,4]`, osver.CodeInvalidArrayLength, "/"},
		{`[1,"2"]`, osver.CodeInvalidType, "/1"},
		{`[1.5,2]`, osver.CodeInvalidType, "/0"},
		{`[1e400,2]`, osver.CodeInvalidType, "/0"},
		{`{"minor":2}`, osver.CodeRequired, "/major"},
		{`{"major":null,"minor":2}`, osver.CodeInvalidType, "/major"},
		{`"1.2.x"`, osver.CodeInvalidFormat, "/"},
		{`true`, osver.CodeInvalidType, "/"},
		{`[[[[[[[[[1]]]]]]]]]`, osver.CodeParseError, "/0/0/0/0/0/0/0/0"},
		{`[1,,2]`, osver.CodeParseError, "/"},
		{`[,1,2]`, osver.CodeParseError, "/"},
		{`[1 2 3]`, osver.CodeParseError, "/"},
		{`{"major" 1 "minor" 2}`, osver.CodeParseError, "/"},
		{`{"major":1,"minor":2,}`, osver.CodeParseError, "/"},
		{`{"major"::1,"minor":2}`, osver.CodeParseError, "/"},
		{`{"major":1 "minor":2}`, osver.CodeParseError, "/"},
	}
	for _, c := range cases {
		var v osver.Version
		err := v.UnmarshalJSON([]byte(c.in))
		if !errors.Is(err, osver.ErrDataCorrupted) {
			t.Fatalf("UnmarshalJSON(%s): error %v should match ErrDataCorrupted", c.in, err)
		}
		iss, _ := osver.AsIssues(err)
		if iss[0].Code != c.code || iss[0].Path != c.path {
			t.Fatalf("UnmarshalJSON(%s): got %s at %s, want %s at %s", c.in, iss[0].Code, iss[0].Path, c.code, c.path)
		}
		if !v.IsZero() {
			t.Fatalf("UnmarshalJSON(%s) must not modify the receiver on failure", c.in)
		}
	}
}

func TestFormatted_PreservesShape(t *testing.T) {
	for _, in := range []string{`"1.2.3"`, `[1,2,3]`, `{"major":1,"minor":2,"patch":3}`} {
		var f osver.Formatted
		if err := json.Unmarshal([]byte(in), &f); err != nil {
			t.Fatalf("Unmarshal(%s): %v", in, err)
		}
		out, err := json.Marshal(f)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != in {
			t.Fatalf("shape not preserved: %s -> %s", in, out)
		}
		if f.String() != "1.2.3" {
			t.Fatalf("String() = %q", f.String())
		}
	}
}

func TestFormatted_PatchIsAddedOnReencode(t *testing.T) {
	var f osver.Formatted
	if err := json.Unmarshal([]byte(`[4,5]`), &f); err != nil {
		t.Fatal(err)
	}
	out, _ := json.Marshal(f)
	if string(out) != `[4,5,0]` {
		t.Fatalf("got %s", out)
	}
}

func TestDecodeFrom_DuplicateKeyWarn(t *testing.T) {
	var warned []osver.Issue
	opt := osver.ParseOpt{OnDuplicateKey: osver.Warn, Warnings: func(is osver.Issue) { warned = append(warned, is) }}
	v, err := osver.DecodeFrom(context.Background(), osver.JSONBytes([]byte(`{"major":1,"minor":2,"minor":3}`)), opt)
	if err != nil {
		t.Fatalf("warn policy should not fail: %v", err)
	}
	if v != osver.New(1, 3, 0) {
		t.Fatalf("last duplicate wins, got %v", v)
	}
	if len(warned) != 1 || warned[0].Code != osver.CodeDuplicateKey || warned[0].Path != "/minor" {
		t.Fatalf("warnings = %+v", warned)
	}
}

func TestDecodeFrom_DuplicateKeyIgnore(t *testing.T) {
	v, err := osver.DecodeFrom(context.Background(), osver.JSONBytes([]byte(`{"major":1,"major":4,"minor":2}`)), osver.ParseOpt{})
	if err != nil || v != osver.New(4, 2, 0) {
		t.Fatalf("DecodeFrom = %v, %v", v, err)
	}
}

func TestDecodeFrom_MaxDepth(t *testing.T) {
	_, err := osver.DecodeFrom(context.Background(), osver.JSONBytes([]byte(`[[1],2]`)), osver.ParseOpt{MaxDepth: 1})
	iss, ok := osver.AsIssues(err)
	if !ok || iss[0].Code != osver.CodeParseError || iss[0].Path != "/0" {
		t.Fatalf("max depth: %v", err)
	}
}

func TestDecodeFrom_MaxBytes(t *testing.T) {
	src := stdjson.Driver().NewBytes([]byte(`{"major":1,"minor":2,"patch":3}`))
	_, err := osver.DecodeFrom(context.Background(), src, osver.ParseOpt{MaxBytes: 10})
	iss, ok := osver.AsIssues(err)
	if !ok || iss[0].Code != osver.CodeTruncated {
		t.Fatalf("max bytes: %v", err)
	}
}

func TestDecodeFrom_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := osver.DecodeFrom(ctx, osver.JSONBytes([]byte(`"1.2"`))); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestDecodeFromWithMeta(t *testing.T) {
	d, err := osver.DecodeFromWithMeta(context.Background(), osver.JSONBytes([]byte(`{"major":1,"minor":2,"patch":null}`)))
	if err != nil {
		t.Fatal(err)
	}
	if d.Format != osver.FormatObject || !d.Presence.Has("/patch", osver.PresenceWasNull) {
		t.Fatalf("meta = %+v", d)
	}
}

func TestDecodeFrom_EmptyInput(t *testing.T) {
	_, err := osver.DecodeFrom(context.Background(), osver.JSONBytes(nil))
	iss, ok := osver.AsIssues(err)
	if !ok || iss[0].Code != osver.CodeParseError {
		t.Fatalf("empty input: %v", err)
	}
}

func TestStreamDecode(t *testing.T) {
	v, err := osver.StreamDecode(context.Background(), strings.NewReader(`{"major":3,"minor":2,"patch":1}`))
	if err != nil || v != osver.New(3, 2, 1) {
		t.Fatalf("StreamDecode = %v, %v", v, err)
	}

	big := `"` + strings.Repeat("1", 64) + `.2"`
	_, err = osver.StreamDecode(context.Background(), strings.NewReader(big), osver.ParseOpt{MaxBytes: 16})
	iss, ok := osver.AsIssues(err)
	if !ok || iss[0].Code != osver.CodeTruncated || iss[0].Params["limit"] != int64(16) {
		t.Fatalf("capped read: %v", err)
	}
}

func TestStreamDecodeAll(t *testing.T) {
	in := "\"1.2.3\"\n[4,5]\n{\"major\":6,\"minor\":7,\"patch\":8}\n"
	got, err := osver.StreamDecodeAll(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []osver.Version{osver.New(1, 2, 3), osver.New(4, 5, 0), osver.New(6, 7, 8)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	got, err = osver.StreamDecodeAll(context.Background(), strings.NewReader(`"1.2" "oops"`))
	if len(got) != 1 || !errors.Is(err, osver.ErrDataCorrupted) {
		t.Fatalf("partial result = %v, %v", got, err)
	}

	got, err = osver.StreamDecodeAll(context.Background(), strings.NewReader(`"1.2", "3.4"`))
	iss, _ := osver.AsIssues(err)
	if len(got) != 1 || len(iss) != 1 || iss[0].Code != osver.CodeParseError {
		t.Fatalf("comma between documents = %v, %v", got, err)
	}
	if iss[0].Offset != 7 {
		t.Fatalf("offset = %d, want 7", iss[0].Offset)
	}

	got, err = osver.StreamDecodeAll(context.Background(), strings.NewReader("  \n"))
	if err != nil || len(got) != 0 {
		t.Fatalf("empty stream = %v, %v", got, err)
	}
}

func TestJSONDriver_Parity(t *testing.T) {
	inputs := []string{
		`"1.2.3"`,
		`[1,2]`,
		`{"major":5,"minor":6,"patch":7}`,
		`{"major":1,"major":2,"minor":3}`,
		`[1,2,3,4]`,
		`[1,,2]`,
		`[1 2 3]`,
		`{"major" 1 "minor" 2}`,
		`{"major":1,"minor":2,}`,
		`[1,2],`,
	}
	decodeAll := func() []string {
		var out []string
		for _, in := range inputs {
			var v osver.Version
			if err := v.UnmarshalJSON([]byte(in)); err != nil {
				iss, _ := osver.AsIssues(err)
				out = append(out, strings.Join(iss.Codes(), ","))
				continue
			}
			out = append(out, v.String())
		}
		return out
	}

	if got := osver.CurrentJSONDriver().Name(); got != "go-json" {
		t.Fatalf("default driver = %q", got)
	}
	withGoJSON := decodeAll()

	osver.SetJSONDriver(stdjson.Driver())
	defer osver.UseDefaultJSONDriver()
	if got := osver.CurrentJSONDriver().Name(); got != "encoding/json" {
		t.Fatalf("driver = %q", got)
	}
	withStd := decodeAll()

	if diff := cmp.Diff(withGoJSON, withStd); diff != "" {
		t.Fatalf("drivers disagree (-go-json +encoding/json):\n%s", diff)
	}
	osver.SetJSONDriver(nil)
	if osver.CurrentJSONDriver().Name() != "encoding/json" {
		t.Fatalf("SetJSONDriver(nil) must be ignored")
	}
}

func TestJSONReader_Tokens(t *testing.T) {
	src := osver.JSONReader(bytes.NewReader([]byte(`{"major":1}`)))
	var kinds []osver.TokenKind
	for {
		tok, err := src.NextToken()
		if err != nil {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	want := []osver.TokenKind{osver.TokenBeginObject, osver.TokenKey, osver.TokenNumber, osver.TokenEndObject}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}
