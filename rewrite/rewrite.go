// Package rewrite maps public page URLs onto the raw-data URLs the fetcher
// reads from.
package rewrite

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidFormat is returned for URLs whose path does not have at least two
// segments starting with the configured prefix.
var ErrInvalidFormat = errors.New("invalid url format")

// Rewriter replaces the leading path segment Prefix with Replacement.
type Rewriter struct {
	Prefix      string
	Replacement []string
}

// Default maps /scripts/<id> onto /hampter/script/<id>.
var Default = Rewriter{
	Prefix:      "scripts",
	Replacement: []string{"hampter", "script"},
}

func (r Rewriter) segments(raw string) (*url.URL, []string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q: %w", ErrInvalidFormat, raw, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != r.Prefix {
		return nil, nil, fmt.Errorf("%w: %q: path must look like /%s/<id>", ErrInvalidFormat, raw, r.Prefix)
	}
	return u, parts, nil
}

// Transform returns raw with its path rewritten. Scheme, host, query and
// fragment are kept.
func (r Rewriter) Transform(raw string) (string, error) {
	u, parts, err := r.segments(raw)
	if err != nil {
		return "", err
	}
	next := append(append([]string{}, r.Replacement...), parts[1:]...)
	u.Path = "/" + strings.Join(next, "/")
	u.RawPath = ""
	return u.String(), nil
}

// ID returns the last path segment of raw, which names the fetched item.
func (r Rewriter) ID(raw string) (string, error) {
	_, parts, err := r.segments(raw)
	if err != nil {
		return "", err
	}
	return parts[len(parts)-1], nil
}
