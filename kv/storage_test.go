package kv

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("foo", "bar").
			Add("hello", "World").
			Add("lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("duplicates preserved in order", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, 4, kv.Len())
		require.Equal(t, []string{"World", "Pavlo"}, slices.Collect(kv.Values("hello")))
		require.Equal(t, "World", kv.Value("HELLO"))
	})

	t.Run("pairs", func(t *testing.T) {
		want := []Pair{
			{"foo", "bar"},
			{"hello", "World"},
			{"lorem", "ipsum"},
			{"hello", "Pavlo"},
		}

		var got []Pair
		for key, value := range getHeaders().Pairs() {
			got = append(got, Pair{key, value})
		}

		require.Equal(t, want, got)
		require.Equal(t, want, getHeaders().Expose())
	})

	t.Run("keys", func(t *testing.T) {
		require.Equal(t, []string{"foo", "hello", "lorem"}, slices.Collect(getHeaders().Keys()))
	})

	t.Run("missing", func(t *testing.T) {
		kv := getHeaders()
		require.False(t, kv.Has("host"))
		require.Empty(t, kv.Value("host"))
		require.Equal(t, "default", kv.ValueOr("host", "default"))
		require.Empty(t, slices.Collect(kv.Values("host")))
	})

	t.Run("clone", func(t *testing.T) {
		kv := getHeaders()
		cloned := kv.Clone()
		kv.Add("extra", "value")
		require.Equal(t, 4, cloned.Len())
		require.True(t, New().Empty())
		require.True(t, New().Clone().Empty())
	})
}
