package status

import "strconv"

type Code uint16

// Codes the server itself deals with. Parse failures are tagged with the code that
// would describe them, even though no error response is ever written.
const (
	OK Code = 200

	BadRequest                  Code = 400
	NotFound                    Code = 404
	RequestTimeout              Code = 408
	RequestEntityTooLarge       Code = 413
	RequestHeaderFieldsTooLarge Code = 431

	InternalServerError     Code = 500
	ServiceUnavailable      Code = 503
	HTTPVersionNotSupported Code = 505
)

// KnownCodes lists every declared code.
var KnownCodes = []Code{
	OK, BadRequest, NotFound, RequestTimeout, RequestEntityTooLarge, RequestHeaderFieldsTooLarge,
	InternalServerError, ServiceUnavailable, HTTPVersionNotSupported,
}

var stringCodes = func() map[Code]string {
	m := make(map[Code]string, len(KnownCodes))
	for _, code := range KnownCodes {
		m[code] = strconv.Itoa(int(code))
	}

	return m
}()

// StringCode returns the decimal representation of the code, avoiding the allocation
// for known ones.
func StringCode(code Code) string {
	if str, found := stringCodes[code]; found {
		return str
	}

	return strconv.Itoa(int(code))
}
