package jinline

import "sort"

// Find searches doc depth-first, pre-order, for the first object entry named
// key whose value is a string. Object entries are visited in document order
// (sorted key order for plain maps) and array elements by increasing index.
// A matching entry stops the search before any later sibling is examined;
// a non-matching container value is searched fully before its next sibling.
// When an object repeats a key, the returned Path names the exact entry.
func Find(doc any, key string) (string, Path, bool) {
	return find(doc, key, nil)
}

func find(node any, key string, at Path) (string, Path, bool) {
	switch n := node.(type) {
	case D:
		var seen map[string]int
		for _, e := range n {
			step := nthKeyStep(e.Key, seen[e.Key])
			if s, ok := matchEntry(e.Key, e.Value, key); ok {
				return s, at.with(step), true
			}
			if s, p, ok := find(e.Value, key, at.with(step)); ok {
				return s, p, true
			}
			if seen == nil {
				seen = make(map[string]int)
			}
			seen[e.Key]++
		}
	case map[string]any:
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := matchEntry(k, n[k], key); ok {
				return s, at.with(KeyStep(k)), true
			}
			if s, p, ok := find(n[k], key, at.with(KeyStep(k))); ok {
				return s, p, true
			}
		}
	case A:
		return findIndexed(n, key, at)
	case []any:
		return findIndexed(n, key, at)
	}
	return "", nil, false
}

func findIndexed(n []any, key string, at Path) (string, Path, bool) {
	for i, v := range n {
		if s, p, ok := find(v, key, at.with(IndexStep(i))); ok {
			return s, p, true
		}
	}
	return "", nil, false
}

func matchEntry(k string, v any, key string) (string, bool) {
	if k != key {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// RootKeys returns the top-level keys of doc, or nil when doc is not an object.
func RootKeys(doc any) []string {
	switch d := doc.(type) {
	case D:
		return d.Keys()
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
	return nil
}
