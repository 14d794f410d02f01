package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	for _, p := range List {
		require.Equal(t, p, FromString(p.String()))
	}

	for _, tc := range []string{
		"", "HTTP/0.9", "HTTP/1.2", "HTTP/2", "HTTP/3.0", "http/1.1", "HTTP/1x1", "HTTP/1.1 ", "HTTPS/1.1",
	} {
		require.Equal(t, Unknown, FromString(tc), tc)
	}
}
