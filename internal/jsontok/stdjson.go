package jsontok

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/osver/internal/engine"
)

type stdSource struct {
	dec *json.Decoder
	frames
}

// NewStdReader wraps an io.Reader into an engine.TokenSource using
// encoding/json. Location is exact (Decoder.InputOffset).
func NewStdReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &stdSource{dec: dec}
}

// NewStdBytes wraps a byte slice using encoding/json.
func NewStdBytes(b []byte) eng.TokenSource { return NewStdReader(bytes.NewReader(b)) }

func (s *stdSource) Location() int64 { return s.dec.InputOffset() }

func (s *stdSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.push(kindObject)
			return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
		case '[':
			s.push(kindArray)
			return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
		case ']':
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
		}
	case string:
		return s.stringToken(v, off), nil
	case bool:
		return s.scalar(eng.Token{Kind: eng.KindBool, Bool: v, Offset: off}), nil
	case json.Number:
		return s.scalar(eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: off}), nil
	case float64:
		return s.scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}), nil
	}
	return s.scalar(eng.Token{Kind: eng.KindNull, Offset: off}), nil
}
