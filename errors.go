package main

import "fmt"

// NotFoundError reports a root directory that does not exist or is not a
// directory.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("the directory %s does not exist: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("the directory %s does not exist", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IOError reports a file or directory that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DecodeError reports a file whose content is not valid UTF-8.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding %s as utf-8: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// PatternError reports an ignore glob that could not be compiled.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern '%s': %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }
