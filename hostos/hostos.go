// Package hostos reports the operating system version of the running host.
package hostos

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/reoring/osver"
)

// ErrUnsupported is returned on platforms without a version probe.
var ErrUnsupported = errors.New("hostos: unsupported platform")

var (
	current    osver.Version
	currentErr error
	once       sync.Once
)

// Current returns the host version. The probe runs once per process.
//
//   - linux: kernel release from uname(2), e.g. 6.8.0
//   - darwin: product version from sysctl kern.osproductversion, e.g. 14.2.1
//   - windows: RtlGetVersion major.minor with the build number as patch
func Current() (osver.Version, error) {
	once.Do(func() {
		current, currentErr = probe()
	})
	return current, currentErr
}

// Native returns Current as the plain three-integer aggregate.
func Native() (osver.OperatingSystemVersion, error) {
	v, err := Current()
	if err != nil {
		return osver.OperatingSystemVersion{}, err
	}
	return v.OperatingSystemVersion(), nil
}

// ParseRelease extracts a version from a release string such as
// "6.8.0-45-generic", "5.15.153.1-microsoft-standard-WSL2" or "14.2".
// Leading digits of the first three dot-separated components are used, and
// at least major and minor must carry digits.
func ParseRelease(release string) (osver.Version, error) {
	parts := strings.SplitN(strings.TrimSpace(release), ".", 4)
	nums := make([]int, 0, 3)
	for i, p := range parts {
		if i == 3 {
			break
		}
		digits := leadingDigits(p)
		if digits == "" {
			break
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return osver.Version{}, &osver.ParseError{Input: release, Err: osver.ErrInvalidNumbers}
		}
		nums = append(nums, n)
		if len(digits) != len(p) {
			// suffix such as "-45-generic" ends the numeric prefix
			break
		}
	}
	if len(nums) < 2 {
		return osver.Version{}, &osver.ParseError{Input: release, Err: osver.ErrInvalidFormat}
	}
	return osver.FromInts(nums)
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
