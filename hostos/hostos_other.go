//go:build !linux && !darwin && !windows

package hostos

import "github.com/reoring/osver"

func probe() (osver.Version, error) { return osver.Version{}, ErrUnsupported }
