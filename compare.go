package osver

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Compare orders a and b lexicographically on (major, minor, patch) and
// returns -1, 0 or +1. It is suitable for slices.SortFunc.
func Compare(a, b Version) int {
	if c := cmp.Compare(a.major, b.major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.minor, b.minor); c != 0 {
		return c
	}
	return cmp.Compare(a.patch, b.patch)
}

// Compare returns Compare(v, o).
func (v Version) Compare(o Version) int { return Compare(v, o) }

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return Compare(v, o) < 0 }

// Equal reports whether all three components match.
func (v Version) Equal(o Version) bool {
	return v.major == o.major && v.minor == o.minor && v.patch == o.patch
}

// Hash returns a 64-bit hash of the three components. Equal versions hash
// identically.
func (v Version) Hash() uint64 {
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(v.major))
	binary.BigEndian.PutUint64(buf[8:16], uint64(v.minor))
	binary.BigEndian.PutUint64(buf[16:24], uint64(v.patch))
	return xxhash.Sum64(buf[:])
}

// Sort sorts vs in ascending order.
func Sort(vs []Version) { slices.SortFunc(vs, Compare) }

// Max returns the greatest of vs, or the zero Version when vs is empty.
func Max(vs ...Version) Version {
	if len(vs) == 0 {
		return Version{}
	}
	return slices.MaxFunc(vs, Compare)
}

// Min returns the smallest of vs, or the zero Version when vs is empty.
func Min(vs ...Version) Version {
	if len(vs) == 0 {
		return Version{}
	}
	return slices.MinFunc(vs, Compare)
}
