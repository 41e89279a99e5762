package engine

import (
	"strconv"
	"strings"
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn) and
	// a copy of every fatal one. May be nil.
	IssueSink func(SimpleIssue)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind       containerKind
	path       string
	keys       map[string]struct{}
	pendingKey string
	hasKey     bool
	nextIndex  int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes. Issue paths are JSON
// Pointers relative to the document root ("/" for the root itself).
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := e.valuePath(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail(codeParseError, path, "max depth exceeded")
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].kind == kindObject {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{Code: codeDuplicateKey, Path: path, Message: "key '" + tok.String + "' duplicated", Offset: tok.Offset}
				if e.opt.OnDuplicate == DupError {
					return Token{}, e.fatal(si)
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.pendingKey = tok.String
			top.hasKey = true
		}
	default:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, e.fail(codeTruncated, path, "max bytes exceeded")
		}
	}
	return tok, nil
}

// valuePath computes the pointer of the value (or key) tok belongs to and
// advances array indexes.
func (e *enforcingTokenSource) valuePath(tok Token) string {
	n := len(e.stack)
	if n == 0 {
		return "/"
	}
	top := &e.stack[n-1]
	switch tok.Kind {
	case KindEndObject, KindEndArray:
		return top.path
	case KindKey:
		return JoinPointer(top.path, tok.String)
	}
	if top.kind == kindArray {
		p := JoinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	if top.hasKey {
		return JoinPointer(top.path, top.pendingKey)
	}
	return top.path
}

// valueDone marks the pending key of the enclosing object as consumed.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 && e.stack[n-1].kind == kindObject {
		e.stack[n-1].hasKey = false
		e.stack[n-1].pendingKey = ""
	}
}

func (e *enforcingTokenSource) fail(code, path, msg string) error {
	return e.fatal(SimpleIssue{Code: code, Path: path, Message: msg, Offset: e.Location()})
}

func (e *enforcingTokenSource) fatal(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// JoinPointer appends token to the JSON Pointer base, escaping it per
// RFC 6901. A base of "" or "/" is the root.
func JoinPointer(base, token string) string {
	if base == "/" {
		base = ""
	}
	return base + "/" + jsonPointerEscaper.Replace(token)
}
