package jinline

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// DefaultKey is the field name inlined when no WithKey option is given.
	DefaultKey = "script"
	// DefaultExcerptLen bounds the raw text attached to failures.
	DefaultExcerptLen = 300
)

// Inliner replaces the first string-valued field with a given name by the
// JSON structure the string encodes.
type Inliner struct {
	key        string
	excerptLen int
	log        *zap.Logger
}

// New constructs an Inliner and applies the provided options.
func New(opts ...Option) (*Inliner, error) {
	in := &Inliner{
		key:        DefaultKey,
		excerptLen: DefaultExcerptLen,
		log:        zap.NewNop(),
	}
	if err := Apply(in, opts...); err != nil {
		return nil, err
	}
	return in, nil
}

// Key returns the field name the Inliner looks for.
func (in *Inliner) Key() string { return in.key }

// Result describes a successful inlining.
type Result struct {
	// Path locates the rewritten field.
	Path Path
	// Value is the structure now stored at Path.
	Value any
	// RawLen is the length in runes of the original string.
	RawLen int
}

// Inline finds the first string field named by the Inliner's key in doc,
// decodes it and stores the result at the same location.
//
// Failures are returned as *Error values: KindNotFound when no eligible field
// exists (already-inlined documents included) and KindMalformedNestedJSON when
// the field does not decode. doc is not modified on failure.
//
// A second call on the same doc reports KindNotFound, unless the decoded value
// is itself a string or holds a string field named by the key. Such a value is
// a new match and is processed like any other.
func (in *Inliner) Inline(doc any) (*Result, error) {
	raw, path, ok := Find(doc, in.key)
	if !ok {
		keys := RootKeys(doc)
		in.log.Debug("field not found", zap.String("key", in.key), zap.Strings("root_keys", keys))
		return nil, &Error{Kind: KindNotFound, Op: "inline", Key: in.key, RootKeys: keys}
	}
	in.log.Debug("field found",
		zap.String("path", path.String()),
		zap.Int("chars", utf8.RuneCountInString(raw)),
	)

	v, err := in.decode(raw)
	if err != nil {
		return nil, &Error{
			Kind:    KindMalformedNestedJSON,
			Op:      "inline",
			Key:     in.key,
			Path:    path,
			Excerpt: excerpt(raw, in.excerptLen),
			Err:     err,
		}
	}
	if err := Replace(doc, path, v); err != nil {
		return nil, fmt.Errorf("inline: %w", err)
	}
	in.log.Debug("field inlined", zap.String("path", path.String()), zap.Stringer("kind", KindOf(v)))
	return &Result{Path: path, Value: v, RawLen: utf8.RuneCountInString(raw)}, nil
}

// decode runs the Sanitizer over raw and parses its normalized output.
func (in *Inliner) decode(raw string) (any, error) {
	clean, err := Sanitize(raw)
	if err != nil {
		// report the cause only; the failure kind belongs to the caller
		var serr *Error
		if errors.As(err, &serr) {
			return nil, serr.Err
		}
		return nil, err
	}
	v, err := Parse([]byte(clean))
	if err != nil {
		return nil, fmt.Errorf("parse sanitized text: %w", err)
	}
	return v, nil
}
