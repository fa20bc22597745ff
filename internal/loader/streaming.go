package loader

// streaming.go cleans byte streams before they reach the CSV parser.
//
//   - bomSkippingReader drops the UTF-8 BOM that Excel writes on "CSV UTF-8"
//     and rejects UTF-16 byte order marks
//   - utf8Sanitizer replaces invalid UTF-8 bytes with '?' and rejects NUL
//   - countingReader tracks bytes read and enforces the upload size limit
//
// wrapForStreaming applies all three in the correct order.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// ErrFileTooLarge is returned when a source exceeds Options.MaxBytes.
var ErrFileTooLarge = errors.New("file too large")

// ErrEncoding is returned for CSV text that is not UTF-8. Excel's "Unicode
// Text" export is UTF-16, which no replacement of single bytes can repair.
var ErrEncoding = errors.New("encoding error")

// bomSkippingReader drops a leading UTF-8 BOM on first read.
type bomSkippingReader struct {
	r       *bufio.Reader
	checked bool
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{r: bufio.NewReader(r)}
}

func (b *bomSkippingReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head, err := b.r.Peek(len(utf8BOM))
		if err != nil && err != io.EOF {
			return 0, err
		}
		if bytes.HasPrefix(head, utf16LEBOM) || bytes.HasPrefix(head, utf16BEBOM) {
			return 0, fmt.Errorf("%w: UTF-16 byte order mark", ErrEncoding)
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := b.r.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return b.r.Read(p)
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?' in constant memory.
// A multi-byte sequence split across reads is carried over to the next read.
// CSV text never carries NUL, so one fails the read with ErrEncoding.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}
	if bytes.IndexByte(p[:n], 0) >= 0 {
		return 0, fmt.Errorf("%w: NUL byte, the file may be UTF-16 or binary", ErrEncoding)
	}

	if isASCII(p[:n]) {
		return n, err
	}
	return s.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place and returns the number of bytes to emit.
func (s *utf8Sanitizer) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		if !atEOF && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// countingReader counts bytes and fails once more than limit bytes are read.
// A limit of zero disables the check.
type countingReader struct {
	r     io.Reader
	limit int64
	n     int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.limit > 0 && c.n > c.limit {
		return n, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, c.limit)
	}
	return n, err
}

// BytesRead returns the number of raw bytes consumed so far.
func (c *countingReader) BytesRead() int64 {
	return c.n
}

// wrapForStreaming counts raw bytes first, then strips the BOM, then sanitizes.
func wrapForStreaming(r io.Reader, limit int64) (io.Reader, *countingReader) {
	counter := &countingReader{r: r, limit: limit}
	return newUTF8Sanitizer(newBOMSkippingReader(counter)), counter
}
