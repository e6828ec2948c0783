package jinline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	t.Run("removes every disallowed control character", func(t *testing.T) {
		var b strings.Builder
		for r := rune(0); r <= 0x7f; r++ {
			b.WriteRune(r)
		}
		out := Strip(b.String())
		for _, r := range out {
			if r == '\t' || r == '\n' || r == '\r' {
				continue
			}
			require.False(t, r < 0x20 || r == 0x7f, "control character %U survived", r)
		}
		require.True(t, strings.HasPrefix(out, "\t\n\r !"), "unexpected prefix %q", out[:4])
		require.True(t, strings.HasSuffix(out, "}~"))
	})

	t.Run("keeps non ascii text", func(t *testing.T) {
		require.Equal(t, "héllo\tмир", Strip("h\x00éllo\t\x1bмир\x7f"))
	})

	t.Run("invalid utf8 bytes are copied unchanged", func(t *testing.T) {
		require.Equal(t, "a\xffb\xc3", Strip("a\xff\x01b\xc3"))
		require.Equal(t, "\xfe", Strip("\xfe"))
	})

	t.Run("c1 controls are kept", func(t *testing.T) {
		require.Equal(t, "a\u0085b", Strip("a\u0085b"))
	})
}

func TestSanitize(t *testing.T) {
	t.Run("strips control bytes and reformats", func(t *testing.T) {
		out, err := Sanitize("{\x01\"k\"\x02: \"v\"}")
		require.NoError(t, err)
		require.Equal(t, "{\n  \"k\": \"v\"\n}", out)
	})

	t.Run("already formatted text is stable", func(t *testing.T) {
		in := "{\n  \"a\": [\n    1,\n    \"ü\"\n  ]\n}"
		out, err := Sanitize(in)
		require.NoError(t, err)
		require.Equal(t, in, out)
	})

	t.Run("escape sequences are normalized", func(t *testing.T) {
		out, err := Sanitize(`{"k":"é\/"}`)
		require.NoError(t, err)
		require.Equal(t, "{\n  \"k\": \"é/\"\n}", out)
	})

	t.Run("malformed text returns original unstripped input", func(t *testing.T) {
		in := "not\x01 json"
		out, err := Sanitize(in)
		require.Error(t, err)
		assert.Equal(t, in, out)
		assert.True(t, errors.Is(err, ErrMalformedJSON))

		var serr *Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, KindMalformedJSON, serr.Kind)
		assert.Equal(t, "sanitize", serr.Op)
		assert.NotEmpty(t, serr.Err.Error())
	})

	t.Run("empty input is malformed", func(t *testing.T) {
		out, err := Sanitize("")
		require.ErrorIs(t, err, ErrMalformedJSON)
		assert.Equal(t, "", out)
	})

	t.Run("serialized documents parse back unchanged", func(t *testing.T) {
		docs := []any{
			D{{Key: "a", Value: D{{Key: "script", Value: `{"x": 1}`}}}},
			A{Number("1"), Number("-2.5e10"), "s", true, false, nil, A{}, D{}},
			D{{Key: "unicode", Value: "日本語  "}, {Key: "ctl", Value: "tab\tnl\n"}},
			"plain string",
			Number("0"),
			nil,
		}
		for _, d := range docs {
			b, err := Compact(d)
			require.NoError(t, err)
			out, err := Sanitize(string(b))
			require.NoError(t, err)
			got, err := Parse([]byte(out))
			require.NoError(t, err)
			if diff := cmp.Diff(d, got); diff != "" {
				t.Errorf("sanitize round trip mismatch (-want +got):\n%s", diff)
			}
		}
	})
}
