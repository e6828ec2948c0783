package jinline

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Marshalers returns marshalers writing D in entry order and Number verbatim.
func Marshalers() *json.Marshalers {
	return json.JoinMarshalers(
		json.MarshalToFunc(marshalDocument),
		json.MarshalToFunc(marshalNumber),
	)
}

// Format serializes v as two-space indented JSON. Non-ASCII text is written
// unescaped and no HTML escaping is applied.
func Format(v any) ([]byte, error) {
	b, err := json.Marshal(v,
		json.WithMarshalers(Marshalers()),
		json.Deterministic(true),
		jsontext.WithIndent("  "),
		jsontext.SpaceAfterColon(true),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return b, nil
}

// Compact serializes v without any insignificant whitespace.
func Compact(v any) ([]byte, error) {
	b, err := json.Marshal(v,
		json.WithMarshalers(Marshalers()),
		json.Deterministic(true),
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	if err != nil {
		return nil, fmt.Errorf("compact: %w", err)
	}
	return b, nil
}

func marshalDocument(enc *jsontext.Encoder, d D) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return fmt.Errorf("write object open: %w", err)
	}
	for _, e := range d {
		if err := enc.WriteToken(jsontext.String(e.Key)); err != nil {
			return fmt.Errorf("write object key %q: %w", e.Key, err)
		}
		if err := json.MarshalEncode(enc, e.Value); err != nil {
			return fmt.Errorf("write object value for key %q: %w", e.Key, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return fmt.Errorf("write object close: %w", err)
	}
	return nil
}

func marshalNumber(enc *jsontext.Encoder, n Number) error {
	if err := enc.WriteValue(jsontext.Value(n)); err != nil {
		return fmt.Errorf("write number %q: %w", string(n), err)
	}
	return nil
}
