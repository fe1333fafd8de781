package ir

import (
	"errors"
)

var (
	ErrParse  = errors.New("parse error")
	ErrBadRef = errors.New("bad reference")
)
