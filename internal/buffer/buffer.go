package buffer

import "bytes"

// Buffer accumulates bytes up to a hard limit. It's used to collect a request head that
// may arrive over several reads.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Index returns the index of the first occurrence of sep, starting the search at offset.
// Returns -1 if there's none.
func (b *Buffer) Index(offset int, sep []byte) int {
	if offset >= len(b.memory) {
		return -1
	}

	idx := bytes.Index(b.memory[offset:], sep)
	if idx == -1 {
		return -1
	}

	return offset + idx
}

// Bytes returns everything written so far. The slice is valid until the next Append or Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

// Cap returns the hard limit.
func (b *Buffer) Cap() int {
	return b.maxSize
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
