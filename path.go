package jinline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step is a single lookup: a key into an object or an index into an array.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
	// Nth selects among entries of a D sharing Key; 0 is the first.
	Nth int
}

func KeyStep(key string) Step { return Step{Key: key} }

// nthKeyStep names the nth entry called key in an object that repeats it.
func nthKeyStep(key string, nth int) Step { return Step{Key: key, Nth: nth} }

func IndexStep(i int) Step { return Step{Index: i, IsIndex: true} }

func (s Step) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path locates a node by successive lookups from a document root.
type Path []Step

// String renders the path for humans, e.g. "content -> 0 -> script".
func (p Path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, " -> ")
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
		} else {
			pointerEscaper.WriteString(&b, s.Key)
		}
	}
	return b.String()
}

// with returns a copy of p extended by s. The copy keeps sibling branches of
// a search from sharing a backing array.
func (p Path) with(s Step) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

var errEmptyPath = errors.New("empty path")

// Resolve follows p from root and returns the node it names.
func Resolve(root any, p Path) (any, error) {
	cur := root
	for i, s := range p {
		next, err := lookup(cur, s)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p[:i+1], err)
		}
		cur = next
	}
	return cur, nil
}

// Replace stores v at p inside root. Only the container holding the last step
// is mutated; every ancestor is left as is. An empty path is rejected since
// the root itself cannot be replaced in place.
func Replace(root any, p Path, v any) error {
	if len(p) == 0 {
		return fmt.Errorf("replace: %w", errEmptyPath)
	}
	parent, err := Resolve(root, p[:len(p)-1])
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	last := p[len(p)-1]
	switch c := parent.(type) {
	case D:
		if last.IsIndex {
			return fmt.Errorf("replace %s: index step into object", p)
		}
		i := c.nth(last.Key, last.Nth)
		if i < 0 {
			return fmt.Errorf("replace %s: key %q not found", p, last.Key)
		}
		c[i].Value = v
		return nil
	case map[string]any:
		if last.IsIndex {
			return fmt.Errorf("replace %s: index step into object", p)
		}
		if _, ok := c[last.Key]; !ok {
			return fmt.Errorf("replace %s: key %q not found", p, last.Key)
		}
		c[last.Key] = v
		return nil
	case A:
		return replaceIndex(c, p, last, v)
	case []any:
		return replaceIndex(c, p, last, v)
	default:
		return fmt.Errorf("replace %s: parent is %s", p, KindOf(parent))
	}
}

func replaceIndex(c []any, p Path, last Step, v any) error {
	if !last.IsIndex {
		return fmt.Errorf("replace %s: key step into array", p)
	}
	if last.Index < 0 || last.Index >= len(c) {
		return fmt.Errorf("replace %s: index %d out of range [0,%d)", p, last.Index, len(c))
	}
	c[last.Index] = v
	return nil
}

func lookup(cur any, s Step) (any, error) {
	switch c := cur.(type) {
	case D:
		if s.IsIndex {
			return nil, errors.New("index step into object")
		}
		if i := c.nth(s.Key, s.Nth); i >= 0 {
			return c[i].Value, nil
		}
		return nil, fmt.Errorf("key %q not found", s.Key)
	case map[string]any:
		if s.IsIndex {
			return nil, errors.New("index step into object")
		}
		if v, ok := c[s.Key]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("key %q not found", s.Key)
	case A:
		return lookupIndex(c, s)
	case []any:
		return lookupIndex(c, s)
	default:
		return nil, fmt.Errorf("cannot step into %s", KindOf(cur))
	}
}

func lookupIndex(c []any, s Step) (any, error) {
	if !s.IsIndex {
		return nil, errors.New("key step into array")
	}
	if s.Index < 0 || s.Index >= len(c) {
		return nil, fmt.Errorf("index %d out of range [0,%d)", s.Index, len(c))
	}
	return c[s.Index], nil
}
