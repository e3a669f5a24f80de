package utils

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidEncoding indicates bytes that do not form valid UTF-8 text.
var ErrInvalidEncoding = errors.New("not valid UTF-8 text")

// DecodeText converts data to a string when it is valid UTF-8.
// The content is returned verbatim, including any byte order mark.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}
