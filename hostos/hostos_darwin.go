package hostos

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/reoring/osver"
)

func probe() (osver.Version, error) {
	s, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return osver.Version{}, fmt.Errorf("sysctl kern.osproductversion: %w", err)
	}
	return ParseRelease(s)
}
