package osver

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads "major.minor[.patch]" leniently.
//
// Empty components are dropped, so "1..2" is 1.2.0. Fewer than two
// components fail with ErrInvalidFormat and a non-integer major or minor
// fails with ErrInvalidNumbers. A patch that does not parse becomes 0.
// Components after the third are ignored. No whitespace is trimmed; signs
// are accepted as strconv.Atoi accepts them.
func Parse(s string) (Version, error) {
	parts := components(s)
	if len(parts) < 2 {
		return Version{}, &ParseError{Input: s, Err: ErrInvalidFormat}
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, &ParseError{Input: s, Err: ErrInvalidNumbers}
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, &ParseError{Input: s, Err: ErrInvalidNumbers}
	}
	patch := 0
	if len(parts) > 2 {
		if p, err := strconv.Atoi(parts[2]); err == nil {
			patch = p
		}
	}
	return New(major, minor, patch), nil
}

// MustParse is like Parse but panics on error. It is meant for package-level
// constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseStrict reads "major.minor[.patch]" strictly: every non-empty
// component must be an integer (ErrInvalidFormat otherwise) and there must
// be two or three of them (ErrInvalidArrayLength otherwise). Decode uses
// this path for string input.
func ParseStrict(s string) (Version, error) {
	parts := components(s)
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, &ParseError{Input: s, Err: ErrInvalidFormat}
		}
		nums = append(nums, n)
	}
	if !validComponentCount(len(nums)) {
		return Version{}, &ParseError{Input: s, Err: ErrInvalidArrayLength}
	}
	return fromComponents(nums), nil
}

// FromInts builds a version from two or three positional components
// (major, minor[, patch]). Other lengths fail with ErrInvalidArrayLength.
func FromInts(nums []int) (Version, error) {
	if !validComponentCount(len(nums)) {
		return Version{}, &ParseError{Input: fmt.Sprint(nums), Err: ErrInvalidArrayLength}
	}
	return fromComponents(nums), nil
}

// components splits s on '.' and drops empty components.
func components(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '.' })
}

func validComponentCount(n int) bool { return n == 2 || n == 3 }

func fromComponents(nums []int) Version {
	patch := 0
	if len(nums) > 2 {
		patch = nums[2]
	}
	return New(nums[0], nums[1], patch)
}

// MarshalText implements encoding.TextMarshaler with the canonical form.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using the lenient Parse.
func (v *Version) UnmarshalText(text []byte) error {
	got, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = got
	return nil
}
