// Package jsontok adapts JSON decoders (goccy/go-json and encoding/json) to
// engine.TokenSource. Both decoders report object keys as plain strings, so
// a frame stack tells keys apart from string values.
package jsontok

import (
	eng "github.com/reoring/osver/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
	started      bool // at least one element or member completed
}

type frames struct{ stack []frame }

func (f *frames) push(k containerKind) {
	f.stack = append(f.stack, frame{kind: k, expectingKey: k == kindObject})
}

func (f *frames) pop() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.valueDone()
}

// valueDone flips the enclosing object back to expecting a key.
func (f *frames) valueDone() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		top.started = true
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// separator returns the separator that must precede the next token, or 0
// when none may. closing reports whether that token ends the innermost
// container.
func (f *frames) separator(closing bool) byte {
	n := len(f.stack)
	if n == 0 || closing {
		return 0
	}
	top := f.stack[n-1]
	switch {
	case top.kind == kindObject && !top.expectingKey:
		return ':'
	case top.started:
		return ','
	}
	return 0
}

// stringToken classifies a decoded string as key or value.
func (f *frames) stringToken(s string, off int64) eng.Token {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return eng.Token{Kind: eng.KindKey, String: s, Offset: off}
		}
	}
	f.valueDone()
	return eng.Token{Kind: eng.KindString, String: s, Offset: off}
}

func (f *frames) scalar(tok eng.Token) eng.Token {
	f.valueDone()
	return tok
}
