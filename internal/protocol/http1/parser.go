package http1

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/wicket/http"
	"github.com/indigo-web/wicket/http/method"
	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/proto"
	"github.com/indigo-web/wicket/http/status"
	"golang.org/x/text/encoding/unicode"
)

type parserState uint8

const (
	eRequestLine parserState = iota + 1
	eHeaders
	eBody
)

const headersPrealloc = 8

// Parse turns a raw request into a Request. It has no side effects and keeps no state between
// calls. On failure no request is returned at all.
//
// The input is decoded as UTF-8, with invalid sequences replaced by U+FFFD, and processed line
// by line. Both LF and CRLF line endings are accepted. Header lines without a colon are skipped.
// Everything after the first empty line is the body, with its lines re-joined by LF.
func Parse(data []byte) (*http.Request, error) {
	text, err := decode(data)
	if err != nil {
		return nil, err
	}

	if len(text) == 0 {
		return nil, status.ErrEmptyRequest
	}

	request := http.NewRequest(headersPrealloc)
	state := eRequestLine
	var body []string

	for line := range lines(text) {
		switch state {
		case eRequestLine:
			if err = parseRequestLine(request, line); err != nil {
				return nil, err
			}

			state = eHeaders
		case eHeaders:
			if len(line) == 0 {
				state = eBody
				continue
			}

			parseHeader(request, line)
		case eBody:
			body = append(body, line)
		default:
			panic("unreachable code")
		}
	}

	if state == eRequestLine {
		return nil, status.ErrEmptyRequest
	}

	if len(body) > 0 {
		request.Body = []byte(strings.Join(body, "\n"))
	}

	return request, nil
}

func parseRequestLine(request *http.Request, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return fmt.Errorf("%w: %q", status.ErrBadRequestLine, line)
	}

	request.Method = method.Parse(tokens[0])
	request.Path = tokens[1]
	request.Protocol = proto.FromString(tokens[2])
	if request.Protocol == proto.Unknown {
		return fmt.Errorf("%w: %q", status.ErrHTTPVersionNotSupported, tokens[2])
	}

	return nil
}

func parseHeader(request *http.Request, line string) {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return
	}

	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "host":
		request.Host = value
	case "content-type":
		request.ContentType = mime.Classify(value)
	}

	request.Headers.Add(key, value)
}

// decode returns the text as is if it's valid UTF-8, otherwise substitutes every invalid
// sequence with the replacement character.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", status.ErrBadRequestLine, err)
	}

	return string(decoded), nil
}

// lines iterates over LF-separated lines, stripping a trailing CR from each. A trailing LF
// doesn't produce an extra empty line.
func lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(text) > 0 {
			line, rest, _ := strings.Cut(text, "\n")
			text = rest

			if !yield(strings.TrimSuffix(line, "\r")) {
				return
			}
		}
	}
}
