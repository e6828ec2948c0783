package jinline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies the failures reported by this package.
type ErrorKind int

const (
	KindMalformedJSON ErrorKind = iota + 1
	KindNotFound
	KindMalformedNestedJSON
	KindStoreIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedJSON:
		return "malformed json"
	case KindNotFound:
		return "not found"
	case KindMalformedNestedJSON:
		return "malformed nested json"
	case KindStoreIO:
		return "store io"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrMalformedJSON       = errors.New("malformed json")
	ErrNotFound            = errors.New("field not found")
	ErrMalformedNestedJSON = errors.New("malformed nested json")
	ErrStoreIO             = errors.New("store io")
)

// Error describes a failed step. Only the fields relevant to Kind are set.
type Error struct {
	Kind ErrorKind
	// Op names the attempted step, e.g. "sanitize", "inline", "load".
	Op string
	// Key is the searched field name for NotFound and MalformedNestedJSON.
	Key string
	// Path locates the offending field for MalformedNestedJSON.
	Path Path
	// RootKeys lists the top-level keys of the searched document for NotFound.
	RootKeys []string
	// Excerpt is a bounded prefix of the offending raw text.
	Excerpt string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	switch e.Kind {
	case KindNotFound:
		fmt.Fprintf(&b, "field %q not found (root keys: [%s])", e.Key, strings.Join(e.RootKeys, ", "))
	case KindMalformedNestedJSON:
		fmt.Fprintf(&b, "field %q at %s is not valid json", e.Key, e.Path)
	default:
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformedJSON:
		return e.Kind == KindMalformedJSON
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrMalformedNestedJSON:
		return e.Kind == KindMalformedNestedJSON
	case ErrStoreIO:
		return e.Kind == KindStoreIO
	}
	return false
}

// excerpt returns at most n runes of s.
func excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
