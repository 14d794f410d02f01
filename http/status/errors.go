package status

type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrEmptyRequest            = NewError(BadRequest, "empty request")
	ErrBadRequestLine          = NewError(BadRequest, "malformed request line")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
	ErrHeaderFieldsTooLarge    = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrBodyTooLarge            = NewError(RequestEntityTooLarge, "request body is too large")
	ErrBadContentLength        = NewError(BadRequest, "malformed Content-Length")
)
