package engine

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// CodeParseError is the code of issues raised for malformed or over-limit input.
const CodeParseError = codeParseError

const (
	codeDuplicateKey = "duplicate_key"
	codeParseError   = "parse_error"
	codeTruncated    = "truncated"
)
