// Package yamlsrc converts yaml.v3 nodes into raw wire values, rejecting
// duplicate mapping keys with their positions.
package yamlsrc

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/osver/internal/engine"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Path      string // JSON Pointer of the duplicated key.
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Reader yields the documents of a YAML stream as nodes.
type Reader struct {
	dec *yaml.Decoder
}

// NewReader constructs a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: yaml.NewDecoder(r)}
}

// Next returns the content node of the next document, or (nil, io.EOF) when
// the stream is exhausted. An empty document yields a null scalar.
func (s *Reader) Next() (*yaml.Node, error) {
	var root yaml.Node
	if err := s.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}, nil
		}
		return root.Content[0], nil
	}
	return &root, nil
}

// IsNull reports whether n is a null scalar (or missing).
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// DefaultMaxDepth bounds container nesting in Value.
const DefaultMaxDepth = 32

// MaxNodes bounds the number of nodes a single Value call visits, counting
// every expansion of an alias.
const MaxNodes = 1 << 16

// Value converts n into JSON-like Go values (map[string]any, []any, string,
// int64, float64, bool, nil) with DefaultMaxDepth. Aliases and merge keys
// are followed.
func Value(n *yaml.Node) (any, error) {
	return ValueMaxDepth(n, DefaultMaxDepth)
}

// ValueMaxDepth is Value with an explicit nesting limit; 0 disables it.
// An alias that refers to one of its own ancestors, a container nested
// deeper than maxDepth and an expansion beyond MaxNodes are
// engine.IssueError values with code parse_error.
func ValueMaxDepth(n *yaml.Node, maxDepth int) (any, error) {
	w := walker{maxDepth: maxDepth, active: make(map[*yaml.Node]bool)}
	return w.value(Resolve(n), "", 0)
}

// Resolve follows aliases and unwraps document nodes.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.AliasNode || n.Kind == yaml.DocumentNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

type walker struct {
	maxDepth int
	nodes    int
	active   map[*yaml.Node]bool // containers on the current path
}

func (w *walker) fail(path, msg string, n *yaml.Node) error {
	if path == "" {
		path = "/"
	}
	var line, col int
	if n != nil {
		line, col = n.Line, n.Column
	}
	return eng.IssueError{SimpleIssue: eng.SimpleIssue{
		Code:    eng.CodeParseError,
		Path:    path,
		Message: fmt.Sprintf("%s at line %d, column %d", msg, line, col),
		Offset:  -1,
	}}
}

// enter marks a container as open and reports a cycle or a limit breach.
func (w *walker) enter(n *yaml.Node, path string, depth int) error {
	if w.active[n] {
		return w.fail(path, "alias refers to an enclosing node", n)
	}
	if w.maxDepth > 0 && depth > w.maxDepth {
		return w.fail(path, "max depth exceeded", n)
	}
	w.active[n] = true
	return nil
}

func (w *walker) value(n *yaml.Node, path string, depth int) (any, error) {
	if n == nil {
		return nil, nil
	}
	if w.nodes++; w.nodes > MaxNodes {
		return nil, w.fail(path, "document expands to too many nodes", n)
	}
	switch n.Kind {
	case yaml.MappingNode:
		if err := w.enter(n, path, depth+1); err != nil {
			return nil, err
		}
		defer delete(w.active, n)
		m := make(map[string]any, len(n.Content)/2)
		if err := w.mapping(n, path, depth+1, m); err != nil {
			return nil, err
		}
		return m, nil
	case yaml.SequenceNode:
		if err := w.enter(n, path, depth+1); err != nil {
			return nil, err
		}
		defer delete(w.active, n)
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.value(Resolve(c), eng.JoinPointer(path, strconv.Itoa(i)), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalar(n), nil
	default:
		return nil, nil
	}
}

// mapping fills m with the explicit keys of n, then with keys pulled in by
// "<<" merge keys that are not already set. Earlier merge sources win.
func (w *walker) mapping(n *yaml.Node, path string, depth int, m map[string]any) error {
	first := make(map[string][2]int, len(n.Content)/2)
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if isMerge(k) {
			merges = append(merges, n.Content[i+1])
			continue
		}
		key := k.Value
		p := eng.JoinPointer(path, key)
		if pos, dup := first[key]; dup {
			return &DuplicateKeyError{Path: p, Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
		}
		first[key] = [2]int{k.Line, k.Column}
		val, err := w.value(Resolve(n.Content[i+1]), p, depth)
		if err != nil {
			return err
		}
		m[key] = val
	}
	for _, src := range merges {
		src = Resolve(src)
		sources := []*yaml.Node{src}
		if src != nil && src.Kind == yaml.SequenceNode {
			sources = sources[:0]
			for _, c := range src.Content {
				sources = append(sources, Resolve(c))
			}
		}
		for _, s := range sources {
			if err := w.merge(s, path, depth, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) merge(src *yaml.Node, path string, depth int, m map[string]any) error {
	if src == nil || src.Kind != yaml.MappingNode {
		return w.fail(eng.JoinPointer(path, "<<"), "merge value is not a mapping", src)
	}
	if err := w.enter(src, path, depth); err != nil {
		return err
	}
	defer delete(w.active, src)
	merged := make(map[string]any, len(src.Content)/2)
	if err := w.mapping(src, path, depth, merged); err != nil {
		return err
	}
	for k, v := range merged {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return nil
}

func isMerge(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.Value == "<<" && k.ShortTag() == "!!merge"
}

func scalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		// int64 avoids overflow surprises; callers coerce later.
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i
		}
	case "!!float":
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return f
		}
	}
	return n.Value
}
