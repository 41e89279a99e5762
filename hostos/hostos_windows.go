package hostos

import (
	"golang.org/x/sys/windows"

	"github.com/reoring/osver"
)

func probe() (osver.Version, error) {
	v := windows.RtlGetVersion()
	return osver.New(int(v.MajorVersion), int(v.MinorVersion), int(v.BuildNumber)), nil
}
