package http

import (
	"testing"

	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/status"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		response := NewResponse()
		require.Equal(t, status.OK, response.Code)
		require.Equal(t, mime.TextHTML, response.ContentType)
		require.Empty(t, response.Content)
	})

	t.Run("builder", func(t *testing.T) {
		data := []byte("hello")
		response := NewResponse().
			WithCode(status.NotFound).
			WithContentType(mime.TextPlain).
			Bytes(data)
		data[0] = 'j'

		require.Equal(t, status.NotFound, response.Code)
		require.Equal(t, mime.TextPlain, response.ContentType)
		require.Equal(t, "hello", response.Content)
	})
}
