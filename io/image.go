// Package io reads and writes E20 program images.
//
// An image is a sequence of lines of the form
//
//	ram[<addr>] = 16'b<bits>;
//
// with decimal addresses in strictly increasing order from 0, and the
// instruction word in binary. Anything after the semicolon is ignored.
package io

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

var reImage = regexp.MustCompile(`^ram\[(\d+)\] = 16'b(\d+);.*$`)

// ReadImage loads a program image into memory, and returns the number of
// words loaded. Addresses are never wrapped; an image that does not fit
// in memory is an error.
func ReadImage(input io.Reader, memory []uint16) (count int, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrImage{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		match := reImage.FindStringSubmatch(line)
		if match == nil {
			err = ErrImageSyntax
			return
		}

		word, perr := strconv.ParseUint(match[2], 2, 16)
		if perr != nil {
			err = ErrImageSyntax
			return
		}

		addr, perr := strconv.ParseUint(match[1], 10, 64)
		if perr != nil || addr != uint64(count) {
			err = ErrImageSequence
			return
		}

		if count >= len(memory) {
			err = ErrImageTooBig
			return
		}

		memory[count] = uint16(word)
		count++
	}

	err = scanner.Err()
	return
}

// WriteImage writes words as a program image starting at address 0. When
// notes has an entry for an address, it is appended as a comment.
func WriteImage(output io.Writer, words []uint16, notes []string) (err error) {
	w := bufio.NewWriter(output)

	for addr, word := range words {
		_, err = fmt.Fprintf(w, "ram[%d] = 16'b%016b;", addr, word)
		if err != nil {
			return
		}
		if addr < len(notes) && len(notes[addr]) != 0 {
			_, err = fmt.Fprintf(w, "\t\t// %v", notes[addr])
			if err != nil {
				return
			}
		}
		err = w.WriteByte('\n')
		if err != nil {
			return
		}
	}

	err = w.Flush()
	return
}
