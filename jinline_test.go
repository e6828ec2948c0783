package jinline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestD(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		var d D
		require.Len(t, d, 0)
		require.Nil(t, d) // zero value of D is nil slice
	})

	t.Run("multiple entry document preserves order", func(t *testing.T) {
		d := D{
			{Key: "first", Value: 1},
			{Key: "second", Value: 2},
			{Key: "third", Value: 3},
		}
		require.Equal(t, []string{"first", "second", "third"}, d.Keys())
	})

	t.Run("get returns first entry with key", func(t *testing.T) {
		d := D{{Key: "a", Value: 1}, {Key: "a", Value: 2}}
		v, ok := d.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)

		_, ok = d.Get("missing")
		require.False(t, ok)
	})

	t.Run("set replaces in place", func(t *testing.T) {
		d := D{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}
		d.Set("b", "two")
		require.Equal(t, D{{Key: "a", Value: 1}, {Key: "b", Value: "two"}, {Key: "c", Value: 3}}, d)
	})

	t.Run("set appends missing key", func(t *testing.T) {
		var d D
		d.Set("a", 1)
		require.Equal(t, D{{Key: "a", Value: 1}}, d)
	})
}

func TestNumber(t *testing.T) {
	t.Run("integer text converts", func(t *testing.T) {
		i, err := Number("42").Int64()
		require.NoError(t, err)
		require.Equal(t, int64(42), i)
	})

	t.Run("float text converts", func(t *testing.T) {
		f, err := Number("1.5e2").Float64()
		require.NoError(t, err)
		require.Equal(t, 150.0, f)
	})

	t.Run("fraction is not an integer", func(t *testing.T) {
		_, err := Number("1.5").Int64()
		require.Error(t, err)
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"document", D{}, KindObject},
		{"map", map[string]any{}, KindObject},
		{"array", A{}, KindArray},
		{"slice", []any{}, KindArray},
		{"string", "s", KindString},
		{"number", Number("1"), KindNumber},
		{"float", 1.5, KindNumber},
		{"bool", true, KindBool},
		{"struct", struct{}{}, KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KindOf(tt.v))
		})
	}

	t.Run("names", func(t *testing.T) {
		require.Equal(t, "object", KindObject.String())
		require.Equal(t, "null", KindNull.String())
		require.Equal(t, "invalid", Kind(99).String())
	})
}
