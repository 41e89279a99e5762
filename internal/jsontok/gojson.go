package jsontok

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/osver/internal/engine"
)

// SyntaxError reports a missing, repeated or misplaced ',' or ':'.
type SyntaxError struct {
	Offset int64 // byte offset of the token that follows the bad separator
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json: %s at offset %d", e.Msg, e.Offset)
}

type goSource struct {
	dec *j.Decoder
	rec *recorder
	end int64 // offset just past the previous token
	frames
}

// NewGoJSONReader wraps an io.Reader into an engine.TokenSource using go-json.
// go-json's tokenizer skips ',' and ':' wherever they appear, so the bytes
// between tokens are checked against the container state here.
func NewGoJSONReader(r io.Reader) eng.TokenSource {
	rec := &recorder{r: r}
	dec := j.NewDecoder(rec)
	dec.UseNumber()
	return &goSource{dec: dec, rec: rec}
}

// NewGoJSONBytes wraps a byte slice using go-json.
func NewGoJSONBytes(b []byte) eng.TokenSource { return NewGoJSONReader(bytes.NewReader(b)) }

func (s *goSource) Location() int64 { return s.dec.InputOffset() }

func (s *goSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if errors.Is(err, io.EOF) {
		if seps, at := s.rec.gap(s.end); len(seps) > 0 {
			return eng.Token{}, &SyntaxError{Offset: at, Msg: fmt.Sprintf("unexpected %q", seps[0])}
		}
	}
	if err != nil {
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	seps, start := s.rec.gap(s.end)
	s.end = off
	closing := tok == j.Delim('}') || tok == j.Delim(']')
	if err := checkSeparators(seps, s.separator(closing), start); err != nil {
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
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
	case j.Number:
		// the literal aliases the decoder buffer
		return s.scalar(eng.Token{Kind: eng.KindNumber, Number: strings.Clone(string(v)), Offset: off}), nil
	case float64:
		return s.scalar(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}), nil
	}
	return s.scalar(eng.Token{Kind: eng.KindNull, Offset: off}), nil
}

func checkSeparators(got []byte, want byte, at int64) error {
	switch {
	case want == 0 && len(got) == 0:
		return nil
	case want == 0:
		return &SyntaxError{Offset: at, Msg: fmt.Sprintf("unexpected %q", got[0])}
	case len(got) == 0:
		return &SyntaxError{Offset: at, Msg: fmt.Sprintf("missing %q", want)}
	case len(got) > 1 || got[0] != want:
		return &SyntaxError{Offset: at, Msg: fmt.Sprintf("unexpected %q", got[len(got)-1])}
	}
	return nil
}

// recorder keeps the bytes handed to the decoder from the end of the
// previous token onwards.
type recorder struct {
	r    io.Reader
	buf  []byte
	base int64 // input offset of buf[0]
}

func (r *recorder) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.buf = append(r.buf, p[:n]...)
	return n, err
}

// gap returns the separators between from and the start of the next token
// and that start offset. Bytes before the token start are released.
func (r *recorder) gap(from int64) ([]byte, int64) {
	i := int(from - r.base)
	var seps []byte
scan:
	for ; i < len(r.buf); i++ {
		switch c := r.buf[i]; c {
		case ' ', '\n', '\r', '\t':
		case ',', ':':
			seps = append(seps, c)
		default:
			break scan
		}
	}
	r.buf = r.buf[i:]
	r.base += int64(i)
	return seps, r.base
}
