package hostos

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/reoring/osver"
)

func probe() (osver.Version, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return osver.Version{}, fmt.Errorf("uname: %w", err)
	}
	return ParseRelease(unix.ByteSliceToString(uts.Release[:]))
}
