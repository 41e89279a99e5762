package osver_test

import (
	"math"
	"testing"

	"github.com/reoring/osver"
)

func TestNew_Accessors(t *testing.T) {
	v := osver.New(14, 2, 1)
	if v.Major() != 14 || v.Minor() != 2 || v.Patch() != 1 {
		t.Fatalf("unexpected components: %d.%d.%d", v.Major(), v.Minor(), v.Patch())
	}
	if got := v.String(); got != "14.2.1" {
		t.Fatalf("String() = %q", got)
	}
}

func TestNewMajorMinor_DefaultsPatch(t *testing.T) {
	if osver.NewMajorMinor(1, 2) != osver.New(1, 2, 0) {
		t.Fatalf("NewMajorMinor(1,2) must equal New(1,2,0)")
	}
	if got := osver.NewMajorMinor(1, 2).String(); got != "1.2.0" {
		t.Fatalf("canonical form always has three components, got %q", got)
	}
}

func TestOperatingSystemVersion_RoundTrip(t *testing.T) {
	native := osver.OperatingSystemVersion{MajorVersion: 10, MinorVersion: 15, PatchVersion: 7}
	v := osver.FromOperatingSystemVersion(native)
	if v != osver.New(10, 15, 7) {
		t.Fatalf("unexpected version: %v", v)
	}
	if v.OperatingSystemVersion() != native {
		t.Fatalf("native round trip mismatch: %+v", v.OperatingSystemVersion())
	}
}

func TestZeroValue(t *testing.T) {
	var v osver.Version
	if !v.IsZero() || v.String() != "0.0.0" {
		t.Fatalf("zero value should be 0.0.0, got %q", v)
	}
	if osver.New(0, 0, 1).IsZero() {
		t.Fatalf("0.0.1 is not zero")
	}
}

func TestExtremeComponents(t *testing.T) {
	for _, v := range []osver.Version{
		osver.New(math.MinInt, math.MinInt, math.MinInt),
		osver.New(math.MaxInt, math.MaxInt, math.MaxInt),
		osver.New(math.MinInt, 0, math.MaxInt),
		osver.New(-1, -2, -3),
	} {
		back, err := osver.Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", v, err)
		}
		if back != v {
			t.Fatalf("text round trip: got %v want %v", back, v)
		}
	}
}

func TestVersion_MapKey(t *testing.T) {
	set := map[osver.Version]struct{}{}
	for _, v := range []osver.Version{
		osver.New(1, 2, 3),
		osver.MustParse("1.2.3"),
		osver.NewMajorMinor(1, 2),
		osver.New(1, 2, 0),
	} {
		set[v] = struct{}{}
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 distinct versions, got %d", len(set))
	}
}
