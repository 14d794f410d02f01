package method

//go:generate stringer -type=Method
type Method uint8

const (
	Unknown Method = iota
	GET
	POST
	PUT
	DELETE

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the recognized HTTP methods. They are sorted by their integer value, however
// Unknown method is not included. So in order to index the List, you must subtract 1 first.
var List = []Method{GET, POST, PUT, DELETE}

// Parse matches the token case-sensitively. Anything unrecognized is Unknown, which
// is a valid method as far as the parser is concerned.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		} else if str == "PUT" {
			return PUT
		}
	case 4:
		if str == "POST" {
			return POST
		}
	case 6:
		if str == "DELETE" {
			return DELETE
		}
	}

	return Unknown
}
