package main

import (
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const countBufferSize = 32 * 1024

// countLinesInFile counts the line records of a UTF-8 text file.
func countLinesInFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	lines, err := countLines(transform.NewReader(f, encoding.UTF8Validator))
	if err != nil {
		if errors.Is(err, encoding.ErrInvalidUTF8) {
			return 0, &DecodeError{Path: path, Err: err}
		}
		return 0, &IOError{Path: path, Err: err}
	}
	return lines, nil
}

// countLines streams r and counts records terminated by "\n", "\r\n" or a
// lone "\r". A final record without a terminator still counts.
func countLines(r io.Reader) (int, error) {
	buf := make([]byte, countBufferSize)
	lines := 0
	partial := false
	prevCR := false

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' && prevCR {
				prevCR = false
				continue
			}
			prevCR = b == '\r'
			if b == '\n' || b == '\r' {
				lines++
				partial = false
			} else {
				partial = true
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}

	if partial {
		lines++
	}
	return lines, nil
}
