package io

import (
	"errors"

	"github.com/ezrec/e20/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageSyntax   = errors.New(f("can't parse line"))
	ErrImageSequence = errors.New(f("memory addresses encountered out of sequence"))
	ErrImageTooBig   = errors.New(f("program too big for memory"))
)

// ErrImage indicates the location of a program image error.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImage) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
