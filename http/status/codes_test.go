package status

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	for _, code := range KnownCodes {
		require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
	}

	require.Equal(t, "299", StringCode(299))
}

func Benchmark(b *testing.B) {
	code := KnownCodes[rand.IntN(len(KnownCodes))]
	b.ResetTimer()

	for range b.N {
		_ = StringCode(code)
	}
}

func TestWrappedError(t *testing.T) {
	err := fmt.Errorf("%w: %q", ErrHTTPVersionNotSupported, "HTTP/0.9")
	require.ErrorIs(t, err, ErrHTTPVersionNotSupported)

	var httpErr HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, HTTPVersionNotSupported, httpErr.Code)
}
