package jinline

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch expresses the inlining as an RFC 6902 document holding a single
// replace operation. The document is decoded once more by a JSON Patch
// implementation before being returned, so callers get a patch that other
// tooling accepts.
func (r *Result) Patch() ([]byte, error) {
	doc := A{D{
		{Key: "op", Value: "replace"},
		{Key: "path", Value: r.Path.Pointer()},
		{Key: "value", Value: r.Value},
	}}
	b, err := Format(doc)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	if _, err := jsonpatch.DecodePatch(b); err != nil {
		return nil, fmt.Errorf("patch: decode: %w", err)
	}
	return b, nil
}
