// Package engine turns a stream of tokens into raw wire values
// (string, json.Number, bool, nil, []any, map[string]any).
package engine

import (
	"encoding/json"
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "{"
	case KindEndObject:
		return "}"
	case KindBeginArray:
		return "["
	case KindEndArray:
		return "]"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // Literal text, never rounded.
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// ErrUnexpectedToken reports a token that cannot start or continue a value.
var ErrUnexpectedToken = errors.New("engine: unexpected token")

// ErrTrailingData reports a second value after a complete document.
var ErrTrailingData = errors.New("engine: trailing data after value")

// DecodeAnyFromSource builds one raw value from the token source. Numbers are
// kept as json.Number so integers at the int64 extremes survive. io.EOF is
// returned untouched when the source is empty.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok)
}

// ExpectEOF fails with ErrTrailingData unless src is exhausted.
func ExpectEOF(src TokenSource) error {
	_, err := src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return ErrTrailingData
	}
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, ErrUnexpectedToken
	}
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, ErrUnexpectedToken
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, eofIsUnexpected(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func eofIsUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
