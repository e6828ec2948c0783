package jinline

import "strconv"

// D represents a document, defined as an ordered collection of key-value pairs.
// Each entry in the document is represented by an E.
type D []E

// A represents an array, defined as a slice of values of any type.
type A []any

// E represents a single entry in a document. It consists of a string key and an
// associated value of any type.
type E struct {
	Key   string
	Value any
}

// Number holds the literal text of a JSON number so that values survive a
// decode/encode cycle byte-for-byte.
type Number string

func (n Number) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }

func (n Number) Int64() (int64, error) { return strconv.ParseInt(string(n), 10, 64) }

// Kind discriminates the shapes a decoded value can take.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

var kindNames = [...]string{"invalid", "object", "array", "string", "number", "bool", "null"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// KindOf reports the Kind of v. Plain Go maps, slices and numeric types are
// accepted alongside D, A and Number so documents built by hand still classify.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case D, map[string]any:
		return KindObject
	case A, []any:
		return KindArray
	case string:
		return KindString
	case Number, float64, float32, int, int64, int32:
		return KindNumber
	case bool:
		return KindBool
	default:
		return KindInvalid
	}
}

// Get returns the value of the first entry with the given key.
func (d D) Get(key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// nth returns the position of the nth entry with the given key, or -1.
func (d D) nth(key string, n int) int {
	for i, e := range d {
		if e.Key != key {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

// Set replaces the value of the first entry with the given key, keeping its
// position, or appends a new entry when the key is absent.
func (d *D) Set(key string, v any) {
	for i := range *d {
		if (*d)[i].Key == key {
			(*d)[i].Value = v
			return
		}
	}
	*d = append(*d, E{Key: key, Value: v})
}

// Keys returns the entry keys in document order.
func (d D) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}
