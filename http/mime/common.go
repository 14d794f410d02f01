package mime

import "strings"

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	JSON        MIME = "application/json"
)

// ContentType is the classified value of a Content-Type header. Only a handful of
// types is recognized, the rest is Unknown.
type ContentType uint8

const (
	Unknown ContentType = iota
	ApplicationJSON
	TextHTML
	TextPlain
)

// classifiable is ordered: the first substring match wins.
var classifiable = [...]struct {
	mime MIME
	ct   ContentType
}{
	{JSON, ApplicationJSON},
	{HTML, TextHTML},
	{Plain, TextPlain},
}

// Classify matches the header value against recognized MIMEs by substring, so
// parameters like charset don't get in the way.
func Classify(value string) ContentType {
	for _, c := range classifiable {
		if strings.Contains(value, c.mime) {
			return c.ct
		}
	}

	return Unknown
}

// MIME returns the wire representation. Unknown is rendered as an octet stream.
func (c ContentType) MIME() MIME {
	switch c {
	case ApplicationJSON:
		return JSON
	case TextHTML:
		return HTML
	case TextPlain:
		return Plain
	default:
		return OctetStream
	}
}

func (c ContentType) String() string {
	switch c {
	case ApplicationJSON:
		return "ApplicationJSON"
	case TextHTML:
		return "TextHTML"
	case TextPlain:
		return "TextPlain"
	default:
		return "Unknown"
	}
}
