package osver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/blang/semver/v4"

	"github.com/reoring/osver"
)

func TestVersion_Semver(t *testing.T) {
	sv, err := osver.New(14, 2, 1).Semver()
	if err != nil {
		t.Fatal(err)
	}
	if !sv.Equals(semver.MustParse("14.2.1")) {
		t.Fatalf("Semver() = %s", sv)
	}
	if _, err := osver.New(1, -2, 0).Semver(); !errors.Is(err, osver.ErrNegativeComponent) {
		t.Fatalf("negative component: %v", err)
	}
}

func TestFromSemver(t *testing.T) {
	v, err := osver.FromSemver(semver.MustParse("10.15.7"))
	if err != nil || v != osver.New(10, 15, 7) {
		t.Fatalf("FromSemver = %v, %v", v, err)
	}
	if _, err := osver.FromSemver(semver.MustParse("1.2.3-beta.1")); !errors.Is(err, osver.ErrSemverMetadata) {
		t.Fatalf("pre-release: %v", err)
	}
	if _, err := osver.FromSemver(semver.MustParse("1.2.3+build.5")); !errors.Is(err, osver.ErrSemverMetadata) {
		t.Fatalf("build metadata: %v", err)
	}
	if _, err := osver.FromSemver(semver.Version{Major: math.MaxUint64}); !errors.Is(err, osver.ErrComponentOverflow) {
		t.Fatalf("overflow: %v", err)
	}
}

func TestParseSemver(t *testing.T) {
	for in, want := range map[string]osver.Version{
		"v1.2.3": osver.New(1, 2, 3),
		"v12.1":  osver.New(12, 1, 0),
		"7.0.0":  osver.New(7, 0, 0),
	} {
		got, err := osver.ParseSemver(in)
		if err != nil || got != want {
			t.Fatalf("ParseSemver(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := osver.ParseSemver("not-a-version"); !errors.Is(err, osver.ErrInvalidFormat) {
		t.Fatalf("invalid input: %v", err)
	}
	if _, err := osver.ParseSemver("1.2.3-rc.1"); !errors.Is(err, osver.ErrSemverMetadata) {
		t.Fatalf("pre-release input: %v", err)
	}
}

func TestSemver_OrderingAgrees(t *testing.T) {
	vs := []osver.Version{osver.New(1, 2, 3), osver.New(1, 10, 0), osver.New(2, 0, 0), osver.New(1, 2, 3)}
	for _, a := range vs {
		for _, b := range vs {
			sa, _ := a.Semver()
			sb, _ := b.Semver()
			if sa.Compare(sb) != a.Compare(b) {
				t.Fatalf("ordering disagrees for %v and %v", a, b)
			}
		}
	}
}
