package http

import (
	"github.com/indigo-web/wicket/http/method"
	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/proto"
	"github.com/indigo-web/wicket/kv"
)

type (
	Headers = *kv.Storage
	Header  = kv.Pair
)

// Request represents a parsed HTTP request. It's built once per connection by the parser
// and must not be modified afterwards.
type Request struct {
	// Method is an enum representing the request method. Unrecognized methods are
	// method.Unknown rather than an error.
	Method method.Method
	// Path is the request target exactly as it was received, with no decoding applied.
	Path string
	// Protocol is always one of the supported versions, otherwise the request wouldn't
	// be parsed.
	Protocol proto.Proto
	// Host is the value of the Host header, empty if none.
	Host string
	// ContentType is the classified Content-Type header value.
	ContentType mime.ContentType
	// Headers holds header pairs in order of their appearance. Keys are lower-cased, duplicates
	// are preserved.
	Headers Headers
	// Body is everything after the head. May be empty.
	Body []byte
}

// NewRequest returns a request with empty headers storage, ready to be filled by the parser.
func NewRequest(headersPrealloc int) *Request {
	return &Request{
		Method:      method.Unknown,
		Protocol:    proto.Unknown,
		ContentType: mime.Unknown,
		Headers:     kv.NewPrealloc(headersPrealloc),
	}
}
