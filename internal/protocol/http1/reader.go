package http1

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/http/status"
	"github.com/indigo-web/wicket/internal/buffer"
	"github.com/indigo-web/wicket/internal/strutil"
	"github.com/indigo-web/wicket/transport"
)

var (
	crlfcrlf = []byte("\r\n\r\n")
	lflf     = []byte("\n\n")
)

// ReadRequest collects a single request from the client. The head is read until the
// first empty line. If the head carries a Content-Length, the body is read up to it,
// otherwise whatever arrived together with the head is considered the body. Bytes past
// the declared length are discarded, as only one request is served per connection.
//
// A connection closed by the peer before the head is complete isn't an error: everything
// received so far is returned, unless nothing was received at all.
func ReadRequest(client transport.Client, cfg *config.Config) ([]byte, error) {
	buff := buffer.New(cfg.NET.ReadBufferSize, cfg.NET.MaxHeaderSize+cfg.Body.MaxSize)
	headEnd := -1

	for headEnd == -1 {
		data, err := client.Read()
		if len(data) > 0 {
			offset := max(buff.Len()-len(crlfcrlf)+1, 0)

			if !buff.Append(data) {
				return nil, status.ErrHeaderFieldsTooLarge
			}

			headEnd = headBoundary(&buff, offset)
			if headEnd == -1 && buff.Len() > cfg.NET.MaxHeaderSize {
				return nil, status.ErrHeaderFieldsTooLarge
			}
		}

		if headEnd != -1 {
			break
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if buff.Len() == 0 {
				return nil, status.ErrEmptyRequest
			}

			return buff.Bytes(), nil
		default:
			return nil, err
		}
	}

	if headEnd > cfg.NET.MaxHeaderSize {
		return nil, status.ErrHeaderFieldsTooLarge
	}

	contentLength, err := findContentLength(buff.Bytes()[:headEnd], cfg.Body.MaxSize)
	if err != nil {
		return nil, err
	}

	if contentLength == -1 {
		return buff.Bytes(), nil
	}

	for buff.Len()-headEnd < contentLength {
		data, err := client.Read()
		if len(data) > 0 && !buff.Append(data) {
			return nil, status.ErrBodyTooLarge
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return buff.Bytes(), nil
		default:
			return nil, err
		}
	}

	return buff.Bytes()[:headEnd+contentLength], nil
}

// headBoundary returns the index right past the empty line terminating the head, or -1
// if there's none yet. Both bare LF and CRLF endings are recognized.
func headBoundary(buff *buffer.Buffer, offset int) int {
	crlfIdx := buff.Index(offset, crlfcrlf)
	lfIdx := buff.Index(offset, lflf)

	switch {
	case crlfIdx == -1 && lfIdx == -1:
		return -1
	case lfIdx == -1 || (crlfIdx != -1 && crlfIdx < lfIdx):
		return crlfIdx + len(crlfcrlf)
	default:
		return lfIdx + len(lflf)
	}
}

// findContentLength returns -1 if the head has no Content-Length header.
func findContentLength(head []byte, maxBodySize int) (int, error) {
	for line := range lines(string(head)) {
		key, value, found := strings.Cut(line, ":")
		if !found || !strutil.CmpFold(strings.TrimSpace(key), "content-length") {
			continue
		}

		length, err := strconv.ParseUint(strings.TrimSpace(value), 10, 63)
		if err != nil {
			return 0, status.ErrBadContentLength
		}

		if length > uint64(maxBodySize) {
			return 0, status.ErrBodyTooLarge
		}

		return int(length), nil
	}

	return -1, nil
}
