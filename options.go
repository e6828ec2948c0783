package jinline

import (
	"errors"

	"go.uber.org/zap"
)

// Option configures an Inliner. Packages layering behavior on top of the
// Inliner expose values of this type so callers opt in explicitly:
//
//	in, _ := jinline.New(jinline.WithKey("payload"), jinline.WithExcerptLen(80))
type Option func(in *Inliner) error

// WithKey sets the field name whose string value is inlined.
func WithKey(key string) Option {
	return func(in *Inliner) error {
		if key == "" {
			return errors.New("option key: empty field name")
		}
		in.key = key
		return nil
	}
}

// WithExcerptLen bounds, in runes, the raw text attached to failures.
func WithExcerptLen(n int) Option {
	return func(in *Inliner) error {
		if n < 0 {
			return errors.New("option excerpt length: negative")
		}
		in.excerptLen = n
		return nil
	}
}

// WithLogger routes progress logs to l. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(in *Inliner) error {
		if l == nil {
			l = zap.NewNop()
		}
		in.log = l
		return nil
	}
}

// Group groups multiple options into one. This allows presets to be passed
// around as a single value, e.g.:
//
//	jinline.New(jinline.Group(defaults...), jinline.WithLogger(l))
func Group(opts ...Option) Option {
	return func(in *Inliner) error { return Apply(in, opts...) }
}

// Apply applies one or more options to an existing Inliner. Stops at the
// first error and returns it.
func Apply(in *Inliner, opts ...Option) error {
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return err
		}
	}
	return nil
}
