package osver

// Presence is the bit flag collected by DecodeWithMeta.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps object-form JSON Pointers ("/major", "/minor", "/patch")
// to Presence flags, whatever shape the input had.
type PresenceMap map[string]Presence

// Has reports whether every bit of flag is set for path.
func (pm PresenceMap) Has(path string, flag Presence) bool {
	return pm[path]&flag == flag
}

// Decoded carries the decoded version along with the detected wire shape and
// presence metadata.
type Decoded struct {
	Value    Version
	Format   EncodingFormat
	Presence PresenceMap
}

// PatchDefaulted reports whether the patch component was absent or null in
// the input.
func (d Decoded) PatchDefaulted() bool {
	return d.Presence.Has("/"+KeyPatch, PresenceDefaultApplied)
}

func positionalPresence(n int) PresenceMap {
	pm := PresenceMap{
		"/" + KeyMajor: PresenceSeen,
		"/" + KeyMinor: PresenceSeen,
		"/" + KeyPatch: PresenceDefaultApplied,
	}
	if n > 2 {
		pm["/"+KeyPatch] = PresenceSeen
	}
	return pm
}
