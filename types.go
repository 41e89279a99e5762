package osver

import eng "github.com/reoring/osver/internal/engine"

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles options for the token-driven entry points (DecodeFrom,
// StreamDecode, UnmarshalJSON).
type ParseOpt struct {
	// OnDuplicateKey decides what a repeated object key does. Error fails the
	// decode with a duplicate_key issue; Warn reports it to Warnings.
	OnDuplicateKey Severity
	MaxDepth       int   // 0 disables the check.
	MaxBytes       int64 // 0 disables the check.
	// Warnings receives non-fatal issues. May be nil.
	Warnings func(Issue)
}

// DefaultParseOpt rejects duplicate keys and caps nesting at 8, which is
// well above any accepted wire shape.
func DefaultParseOpt() ParseOpt {
	return ParseOpt{OnDuplicateKey: Error, MaxDepth: 8}
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return DefaultParseOpt()
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func (o ParseOpt) enforce(src eng.TokenSource) eng.TokenSource {
	if o.OnDuplicateKey == Ignore && o.MaxDepth == 0 && o.MaxBytes == 0 {
		return src
	}
	var sink func(eng.SimpleIssue)
	if o.Warnings != nil {
		sink = func(si eng.SimpleIssue) {
			if si.Code == CodeDuplicateKey && o.OnDuplicateKey == Warn {
				o.Warnings(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: si.Offset})
			}
		}
	}
	return eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(o.OnDuplicateKey),
		MaxDepth:    o.MaxDepth,
		MaxBytes:    o.MaxBytes,
		IssueSink:   sink,
	})
}
