package http1

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/wicket/http/method"
	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/proto"
	"github.com/indigo-web/wicket/http/status"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	t.Run("simple GET", func(t *testing.T) {
		request, err := Parse([]byte("GET / HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, method.GET, request.Method)
		require.Equal(t, "/", request.Path)
		require.Equal(t, proto.HTTP11, request.Protocol)
		require.Empty(t, request.Host)
		require.Equal(t, mime.Unknown, request.ContentType)
		require.True(t, request.Headers.Empty())
		require.Empty(t, request.Body)
	})

	t.Run("headers", func(t *testing.T) {
		raw := "GET /index.html HTTP/1.1\r\n" +
			"Host: example.com\r\n" +
			"Content-Type: application/json\r\n" +
			"X-Custom:   spaced value  \r\n\r\n"

		request, err := Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, "/index.html", request.Path)
		require.Equal(t, "example.com", request.Host)
		require.Equal(t, mime.ApplicationJSON, request.ContentType)
		require.Equal(t, 3, request.Headers.Len())
		require.Equal(t, "spaced value", request.Headers.Value("x-custom"))
		require.Equal(t, []string{"host", "content-type", "x-custom"}, collect(request.Headers.Keys()))
	})

	t.Run("duplicate headers are preserved", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nAccept: a\r\nAccept: b\r\n\r\n"
		request, err := Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, collect(request.Headers.Values("accept")))
	})

	t.Run("header without colon is skipped", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nmalformed\r\nHost: localhost\r\n\r\n"
		request, err := Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, 1, request.Headers.Len())
		require.Equal(t, "localhost", request.Host)
	})

	t.Run("header value with colons", func(t *testing.T) {
		raw := "GET / HTTP/1.1\r\nHost: localhost:3000\r\n\r\n"
		request, err := Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, "localhost:3000", request.Host)
	})

	t.Run("body", func(t *testing.T) {
		raw := "POST /submit HTTP/1.0\r\nContent-Type: text/plain\r\n\r\nhello\r\nworld"
		request, err := Parse([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, method.POST, request.Method)
		require.Equal(t, proto.HTTP10, request.Protocol)
		require.Equal(t, mime.TextPlain, request.ContentType)
		require.Equal(t, "hello\nworld", string(request.Body))
	})

	t.Run("bare LF", func(t *testing.T) {
		request, err := Parse([]byte("DELETE /x HTTP/2.0\nHost: h\n\nbody\n"))
		require.NoError(t, err)
		require.Equal(t, method.DELETE, request.Method)
		require.Equal(t, proto.HTTP2, request.Protocol)
		require.Equal(t, "h", request.Host)
		require.Equal(t, "body", string(request.Body))
	})

	t.Run("no empty line", func(t *testing.T) {
		request, err := Parse([]byte("PUT /a HTTP/1.1\r\nHost: h"))
		require.NoError(t, err)
		require.Equal(t, method.PUT, request.Method)
		require.Equal(t, "h", request.Host)
		require.Empty(t, request.Body)
	})

	t.Run("unknown method", func(t *testing.T) {
		request, err := Parse([]byte("get / HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, method.Unknown, request.Method)
	})

	t.Run("extra request line tokens", func(t *testing.T) {
		request, err := Parse([]byte("GET  /path   HTTP/1.1 trailing\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "/path", request.Path)
		require.Equal(t, proto.HTTP11, request.Protocol)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		request, err := Parse([]byte("GET /\xff HTTP/1.1\r\nX-Key: \xfe\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "/�", request.Path)
		require.Equal(t, "�", request.Headers.Value("x-key"))
	})

	t.Run("random headers", func(t *testing.T) {
		var builder strings.Builder
		builder.WriteString("GET / HTTP/1.1\r\n")
		keys := make([]string, 50)
		for i := range keys {
			keys[i] = strings.ToLower(uniuri.NewLen(16))
			builder.WriteString(fmt.Sprintf("%s: %d\r\n", keys[i], i))
		}
		builder.WriteString("\r\n")

		request, err := Parse([]byte(builder.String()))
		require.NoError(t, err)
		require.Equal(t, len(keys), request.Headers.Len())
		for i, key := range keys {
			require.Equal(t, fmt.Sprint(i), request.Headers.Value(key))
		}
	})
}

func TestParserErrors(t *testing.T) {
	for _, tc := range []struct {
		Name string
		Raw  string
		Err  error
	}{
		{"empty", "", status.ErrEmptyRequest},
		{"only newline", "\n", status.ErrBadRequestLine},
		{"two tokens", "GET /\r\n\r\n", status.ErrBadRequestLine},
		{"single token", "GARBAGE\r\n\r\n", status.ErrBadRequestLine},
		{"unsupported version", "GET / HTTP/3.0\r\n\r\n", status.ErrHTTPVersionNotSupported},
		{"lowercase version", "GET / http/1.1\r\n\r\n", status.ErrHTTPVersionNotSupported},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			request, err := Parse([]byte(tc.Raw))
			require.ErrorIs(t, err, tc.Err)
			require.Nil(t, request)
		})
	}
}

func TestLines(t *testing.T) {
	for _, tc := range []struct {
		Sample string
		Want   []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
		{"\n", []string{""}},
		{"a\r\n\r\n", []string{"a", ""}},
	} {
		require.Equal(t, tc.Want, collect(lines(tc.Sample)), "%q", tc.Sample)
	}
}

func collect(seq func(func(string) bool)) (result []string) {
	for s := range seq {
		result = append(result, s)
	}

	return result
}
