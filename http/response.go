package http

import (
	"github.com/indigo-web/wicket/http/mime"
	"github.com/indigo-web/wicket/http/status"
)

// Response is what the router produces and the serializer renders. It's created once per
// handled request and discarded after being written.
type Response struct {
	Code        status.Code
	ContentType mime.ContentType
	Content     string
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and text/html content-type.
func NewResponse() *Response {
	return &Response{
		Code:        status.OK,
		ContentType: mime.TextHTML,
	}
}

// WithCode sets the response code.
func (r *Response) WithCode(code status.Code) *Response {
	r.Code = code
	return r
}

// WithContentType sets the response content type.
func (r *Response) WithContentType(ct mime.ContentType) *Response {
	r.ContentType = ct
	return r
}

// String sets the response body.
func (r *Response) String(content string) *Response {
	r.Content = content
	return r
}

// Bytes sets the response body, copying the data.
func (r *Response) Bytes(content []byte) *Response {
	return r.String(string(content))
}
