package token

import (
	"errors"
)

var (
	ErrUnterminated      = errors.New("unterminated string")
	ErrBadUTF8           = errors.New("invalid utf8")
	ErrBadUnicode        = errors.New("invalid unicode escape")
	ErrUnicodeControl    = errors.New("raw control character in string")
	ErrBadEscape         = errors.New("invalid escape")
	ErrNumber            = errors.New("invalid number")
	ErrNumberLeadingZero = errors.New("invalid number: leading zero")
)
