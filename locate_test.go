package jinline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	t.Run("nested field", func(t *testing.T) {
		doc := unmarshal(t, `{"a": {"script": "{\"x\": 1}"}}`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, `{"x": 1}`, s)
		assert.Equal(t, Path{KeyStep("a"), KeyStep("script")}, p)
	})

	t.Run("non string values are skipped", func(t *testing.T) {
		doc := unmarshal(t, `{"script": {"script": 1}, "b": [{"script": null}, {"script": "hit"}]}`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, "hit", s)
		assert.Equal(t, "b -> 1 -> script", p.String())
	})

	t.Run("first match in depth first pre order wins", func(t *testing.T) {
		// the deep match under "a" precedes the later root level entry
		doc := unmarshal(t, `{"a": {"b": {"script": "deep"}}, "script": "shallow"}`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, "deep", s)
		assert.Equal(t, Path{KeyStep("a"), KeyStep("b"), KeyStep("script")}, p)
	})

	t.Run("match stops before later siblings", func(t *testing.T) {
		doc := unmarshal(t, `{"x": {"script": "one", "inner": {"script": "two"}}}`)
		s, _, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, "one", s)
	})

	t.Run("array root visited by index", func(t *testing.T) {
		doc := unmarshal(t, `[[{"script": "a"}], {"script": "b"}]`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, "a", s)
		assert.Equal(t, Path{IndexStep(0), IndexStep(0), KeyStep("script")}, p)
	})

	t.Run("empty string still matches", func(t *testing.T) {
		s, p, ok := Find(unmarshal(t, `{"script": ""}`), "script")
		require.True(t, ok)
		assert.Equal(t, "", s)
		assert.Equal(t, Path{KeyStep("script")}, p)
	})

	t.Run("plain map walks sorted keys", func(t *testing.T) {
		doc := map[string]any{
			"b": map[string]any{"script": "b"},
			"a": []any{map[string]any{"script": "a"}},
		}
		for range 10 {
			s, p, ok := Find(doc, "script")
			require.True(t, ok)
			require.Equal(t, "a", s)
			require.Equal(t, Path{KeyStep("a"), IndexStep(0), KeyStep("script")}, p)
		}
	})

	t.Run("repeated sibling key names the matching entry", func(t *testing.T) {
		doc := unmarshal(t, `{"script": 1, "script": "[2]"}`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, "[2]", s)
		assert.Equal(t, Path{nthKeyStep("script", 1)}, p)
		assert.Equal(t, "script", p.String())
		assert.Equal(t, "/script", p.Pointer())

		got, err := Resolve(doc, p)
		require.NoError(t, err)
		assert.Equal(t, "[2]", got)
	})

	t.Run("repeated ancestor key names the matching entry", func(t *testing.T) {
		doc := unmarshal(t, `{"a": 1, "b": 2, "a": {"script": "[1]"}}`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		assert.Equal(t, "[1]", s)
		assert.Equal(t, Path{nthKeyStep("a", 1), KeyStep("script")}, p)

		got, err := Resolve(doc, p)
		require.NoError(t, err)
		assert.Equal(t, "[1]", got)
	})

	t.Run("missing field", func(t *testing.T) {
		for _, src := range []string{`{"other": "value"}`, `[]`, `"script"`, `null`, `{"script": {"x": 1}}`} {
			_, p, ok := Find(unmarshal(t, src), "script")
			assert.False(t, ok, src)
			assert.Nil(t, p, src)
		}
	})

	t.Run("found path resolves to the found value", func(t *testing.T) {
		doc := unmarshal(t, `{"l": [1, {"m": [{"script": "v"}]}]}`)
		s, p, ok := Find(doc, "script")
		require.True(t, ok)
		got, err := Resolve(doc, p)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})
}

func TestRootKeys(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, RootKeys(unmarshal(t, `{"b":1,"a":2}`)))
	assert.Equal(t, []string{"a", "b"}, RootKeys(map[string]any{"b": 1, "a": 2}))
	assert.Nil(t, RootKeys(A{}))
	assert.Nil(t, RootKeys("s"))
}
