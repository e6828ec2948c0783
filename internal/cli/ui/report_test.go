package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/jinline"
)

func newTestReporter() (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewReporter(&buf, true), &buf
}

func TestReporter(t *testing.T) {
	t.Run("levels carry symbols", func(t *testing.T) {
		r, buf := newTestReporter()
		r.Info("loaded %d keys", 2)
		r.Success("saved %s", "out.json")
		r.Warn("careful")
		r.Step("working")
		out := buf.String()
		assert.Contains(t, out, "🔍 loaded 2 keys\n")
		assert.Contains(t, out, "✅ saved out.json\n")
		assert.Contains(t, out, "⚠️  careful\n")
		assert.Contains(t, out, "📝 working\n")
	})

	t.Run("failure with excerpt and hints", func(t *testing.T) {
		r, buf := newTestReporter()
		r.Fail(Failure{Attempted: "parse script", Reason: "bad", Excerpt: "not\njson", Hints: []string{"try again"}})
		out := buf.String()
		assert.Contains(t, out, "❌ PARSE SCRIPT: bad\n")
		assert.Contains(t, out, "(first 8 chars)")
		assert.Contains(t, out, `"not\njson"`)
		assert.Contains(t, out, "→ try again")
	})

	t.Run("preview is bounded", func(t *testing.T) {
		r, buf := newTestReporter()
		r.Preview(strings.Repeat("ж", 10), 4)
		assert.Contains(t, buf.String(), "жжжж...\n")

		buf.Reset()
		r.Preview("short", 10)
		assert.Contains(t, buf.String(), "\nshort\n")
		assert.NotContains(t, buf.String(), "...")
	})
}

func TestOutcome(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, buf := newTestReporter()
		err := r.Outcome(&jinline.Result{Path: jinline.Path{jinline.KeyStep("script")}, Value: jinline.D{}, RawLen: 2}, nil)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "found field at script")
		assert.Contains(t, buf.String(), "inlined 2 chars as object")
	})

	t.Run("not found is reported", func(t *testing.T) {
		r, buf := newTestReporter()
		err := r.Outcome(nil, &jinline.Error{Kind: jinline.KindNotFound, Op: "inline", Key: "script", RootKeys: []string{"a", "b"}})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `no string field "script"`)
		assert.Contains(t, buf.String(), "root keys: a, b")
	})

	t.Run("malformed nested json is reported", func(t *testing.T) {
		r, buf := newTestReporter()
		err := r.Outcome(nil, &jinline.Error{
			Kind:    jinline.KindMalformedNestedJSON,
			Op:      "inline",
			Path:    jinline.Path{jinline.KeyStep("script")},
			Excerpt: "not json",
			Err:     errors.New("invalid character"),
		})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "❌ PARSE SCRIPT: invalid character")
		assert.Contains(t, buf.String(), `"not json"`)
		assert.Contains(t, buf.String(), "left unchanged")
	})

	t.Run("other errors are returned", func(t *testing.T) {
		r, buf := newTestReporter()
		ioErr := &jinline.Error{Kind: jinline.KindStoreIO, Op: "save", Err: errors.New("disk full")}
		assert.Same(t, ioErr, r.Outcome(nil, ioErr))
		assert.Equal(t, assert.AnError, r.Outcome(nil, assert.AnError))
		assert.Empty(t, buf.String())
	})
}

func TestDiff(t *testing.T) {
	t.Run("identical text", func(t *testing.T) {
		r, buf := newTestReporter()
		assert.False(t, r.Diff("a\nb\n", "a\nb\n"))
		assert.Empty(t, buf.String())
	})

	t.Run("changed line with context", func(t *testing.T) {
		r, buf := newTestReporter()
		before := "1\n2\n3\n4\n5\n6\n7\n8\n"
		after := "1\n2\n3\n4\nfive\n6\n7\n8\n"
		require.True(t, r.Diff(before, after))
		assert.Equal(t, "@@\n  3\n  4\n- 5\n+ five\n  6\n  7\n@@\n", buf.String())
	})
}
