package osver

import (
	"context"
	"errors"
	"io"

	"github.com/reoring/osver/i18n"
	eng "github.com/reoring/osver/internal/engine"
	"github.com/reoring/osver/internal/jsontok"
)

// DecodeFrom consumes one JSON document from src, enforcing opts (the last
// one wins; DefaultParseOpt when none), and decodes it as a version. Trailing
// tokens after the document are a parse_error.
func DecodeFrom(ctx context.Context, src Source, opts ...ParseOpt) (Version, error) {
	d, err := DecodeFromWithMeta(ctx, src, opts...)
	return d.Value, err
}

// DecodeFromWithMeta is DecodeFrom with shape and presence metadata.
func DecodeFromWithMeta(ctx context.Context, src Source, opts ...ParseOpt) (Decoded, error) {
	if err := ctx.Err(); err != nil {
		return Decoded{}, err
	}
	enforced := lastOpt(opts).enforce(engineTokenSource(src))
	raw, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Decoded{}, Issues{rootPath.Issue(CodeParseError, io.ErrUnexpectedEOF)}
		}
		return Decoded{}, toIssues(err)
	}
	if err := eng.ExpectEOF(enforced); err != nil {
		return Decoded{}, toIssues(err)
	}
	return DecodeWithMeta(raw)
}

// StreamDecode decodes one JSON document read from r. When MaxBytes is set
// the size cap is enforced up front.
func StreamDecode(ctx context.Context, r io.Reader, opts ...ParseOpt) (Version, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := readCapped(r, opt.MaxBytes)
		if err != nil {
			return Version{}, err
		}
		return DecodeFrom(ctx, JSONBytes(data), opt)
	}
	return DecodeFrom(ctx, JSONReader(r), opt)
}

// StreamDecodeAll decodes every whitespace-separated JSON document in r
// (NDJSON or concatenated values). It stops at the first failure and
// returns the versions decoded so far. The context is checked between
// documents.
func StreamDecodeAll(ctx context.Context, r io.Reader, opts ...ParseOpt) ([]Version, error) {
	opt := lastOpt(opts)
	var src Source
	if opt.MaxBytes > 0 {
		data, err := readCapped(r, opt.MaxBytes)
		if err != nil {
			return nil, err
		}
		src = JSONBytes(data)
	} else {
		src = JSONReader(r)
	}
	enforced := opt.enforce(engineTokenSource(src))

	var out []Version
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		raw, err := eng.DecodeAnyFromSource(enforced)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, toIssues(err)
		}
		v, err := Decode(raw)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

func readCapped(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, Issues{rootPath.Issue(CodeParseError, err)}
	}
	if int64(len(data)) > maxBytes {
		return nil, Issues{rootPath.Issue(CodeTruncated, nil, "limit", maxBytes)}
	}
	return data, nil
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Path: ie.Path, Code: ie.Code, Message: i18n.T(ie.Code, nil) + ": " + ie.Message, Offset: ie.Offset}}
	}
	var se *jsontok.SyntaxError
	if errors.As(err, &se) {
		is := rootPath.Issue(CodeParseError, err)
		is.Offset = se.Offset
		return Issues{is}
	}
	return Issues{rootPath.Issue(CodeParseError, err)}
}
