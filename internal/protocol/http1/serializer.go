package http1

import (
	"strconv"

	"github.com/indigo-web/wicket/http"
	"github.com/indigo-web/wicket/http/status"
)

const (
	// the reason phrase is always OK, whatever the code is. Clients don't care about it
	// anyway, but it's visible on the wire.
	reasonPhrase = " OK\r\n"
	crlf         = "\r\n"
)

// AppendResponse renders the response into buff. The rendered response always closes the
// connection and has neither chunking nor any headers besides Content-Type, Content-Length
// and Connection.
func AppendResponse(buff []byte, response *http.Response) []byte {
	buff = append(buff, "HTTP/1.1 "...)
	buff = append(buff, status.StringCode(response.Code)...)
	buff = append(buff, reasonPhrase...)
	buff = append(buff, "Content-Type: "...)
	buff = append(buff, response.ContentType.MIME()...)
	buff = append(buff, crlf...)
	buff = append(buff, "Content-Length: "...)
	buff = strconv.AppendInt(buff, int64(len(response.Content)), 10)
	buff = append(buff, crlf...)
	buff = append(buff, "Connection: close\r\n"...)
	buff = append(buff, crlf...)

	return append(buff, response.Content...)
}

// Format renders the response into a string.
func Format(response *http.Response) string {
	return string(AppendResponse(nil, response))
}

// ResponseSize returns exactly how many bytes AppendResponse produces.
func ResponseSize(response *http.Response) int {
	const fixed = len("HTTP/1.1 ") + len(reasonPhrase) + len("Content-Type: ") + len(crlf) +
		len("Content-Length: ") + len(crlf) + len("Connection: close\r\n") + len(crlf)

	contentLength := len(response.Content)

	return fixed + len(status.StringCode(response.Code)) + len(response.ContentType.MIME()) +
		len(strconv.Itoa(contentLength)) + contentLength
}
