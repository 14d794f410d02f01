package strutil

// CmpFold is an ASCII-only case-insensitive comparison. It's good enough for header
// keys, which are ASCII tokens anyway.
func CmpFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i]|0x20 != b[i]|0x20 {
			return false
		}
	}

	return true
}
