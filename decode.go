package jinline

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// decodeOptions relax json/v2 defaults so that scraped text is accepted the
// way lenient parsers accept it: repeated names are kept as separate entries
// and invalid UTF-8 is passed through.
var decodeOptions = []json.Options{
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
}

// Unmarshalers returns the full set of jinline unmarshalers allowing decoding
// into:
//   - any/interface{} -> objects as D, arrays as A, numbers as Number
//   - *D              -> direct ordered object decoding
//   - *A              -> direct array decoding
func Unmarshalers() *json.Unmarshalers {
	return json.JoinUnmarshalers(
		unmarshalValue(), // *any (objects, arrays, numbers)
		unmarshalDocument(),
		unmarshalCollection(),
	)
}

// Parse decodes a single JSON value from data. Trailing non-whitespace after
// the value is an error.
func Parse(data []byte) (any, error) {
	var out any
	opts := append([]json.Options{json.WithUnmarshalers(Unmarshalers())}, decodeOptions...)
	if err := json.Unmarshal(data, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// unmarshalValue wraps JSON objects as D (ordered document) rather than
// map[string]any, arrays as A, and numbers as their literal Number text.
// Strings, booleans and null are left to the default logic via json.SkipFunc.
//
// Empty objects ({}) produce an empty D; empty arrays ([]) produce an empty A.
func unmarshalValue() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *any) error {
		switch dec.PeekKind() {
		case '{':
			d, err := decodeObject(dec)
			if err != nil {
				return err
			}
			*v = d
			return nil
		case '[':
			arr, err := decodeArray(dec)
			if err != nil {
				return err
			}
			*v = arr
			return nil
		case '0':
			raw, err := dec.ReadValue()
			if err != nil {
				return fmt.Errorf("read number: %w", err)
			}
			*v = Number(raw)
			return nil
		default:
			return json.SkipFunc
		}
	})
}

// unmarshalDocument provides decoding of a JSON object into a *D when the
// target type is *D.
func unmarshalDocument() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *D) error {
		if dec.PeekKind() != '{' {
			return json.SkipFunc
		}
		d, err := decodeObject(dec)
		if err != nil {
			return err
		}
		*v = d
		return nil
	})
}

// unmarshalCollection provides decoding of a JSON array into an *A when the
// target type is *A.
func unmarshalCollection() *json.Unmarshalers {
	return json.UnmarshalFromFunc(func(dec *jsontext.Decoder, v *A) error {
		if dec.PeekKind() != '[' {
			return json.SkipFunc
		}
		arr, err := decodeArray(dec)
		if err != nil {
			return err
		}
		*v = arr
		return nil
	})
}

// decodeObject decodes a JSON object into a D, keeping entries in source order.
func decodeObject(dec *jsontext.Decoder) (D, error) {
	if _, err := dec.ReadToken(); err != nil { // '{'
		return nil, fmt.Errorf("read object open: %w", err)
	}
	res := D{}
	for dec.PeekKind() != '}' {
		var k string
		if err := json.UnmarshalDecode(dec, &k); err != nil {
			return nil, fmt.Errorf("read object key: %w", err)
		}
		var vv any
		if err := json.UnmarshalDecode(dec, &vv); err != nil {
			return nil, fmt.Errorf("read object value for key %q: %w", k, err)
		}
		res = append(res, E{Key: k, Value: vv})
	}
	if _, err := dec.ReadToken(); err != nil { // '}'
		return nil, fmt.Errorf("read object close: %w", err)
	}
	return res, nil
}

// decodeArray decodes a JSON array into A.
func decodeArray(dec *jsontext.Decoder) (A, error) {
	if _, err := dec.ReadToken(); err != nil { // '['
		return nil, fmt.Errorf("read array open: %w", err)
	}
	arr := A{}
	for dec.PeekKind() != ']' {
		var elem any
		if err := json.UnmarshalDecode(dec, &elem); err != nil {
			return nil, fmt.Errorf("read array element: %w", err)
		}
		arr = append(arr, elem)
	}
	if _, err := dec.ReadToken(); err != nil { // ']'
		return nil, fmt.Errorf("read array close: %w", err)
	}
	return arr, nil
}
