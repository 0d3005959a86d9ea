// Package webperr defines the errors returned across the conversion boundary.
//
// Every concrete error type matches one sentinel through errors.Is, so callers
// can branch on the kind without a type switch:
//
//	if errors.Is(err, webperr.ErrBufferTooSmall) { ... }
package webperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOption  = errors.New("invalid option")
	ErrUsage          = errors.New("usage error")
	ErrBufferTooSmall = errors.New("buffer too small")
	ErrEngineFailure  = errors.New("engine failure")
	ErrIO             = errors.New("io failure")
)

// InvalidOptionError reports a conversion parameter outside its range, or a
// value that is not a number at all (Err is then the parse error).
type InvalidOptionError struct {
	Field string
	Value string
	Min   int
	Max   int
	Err   error
}

func (e *InvalidOptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %s: must be in [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *InvalidOptionError) Is(target error) bool { return target == ErrInvalidOption }
func (e *InvalidOptionError) Unwrap() error        { return e.Err }

// UsageError reports a malformed command line.
type UsageError struct {
	Reason string
	Usage  string
}

func (e *UsageError) Error() string {
	if e.Reason == "" {
		return "usage: " + e.Usage
	}
	return e.Reason + "; usage: " + e.Usage
}

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// BufferTooSmallError reports that the engine output did not fit a
// caller-supplied destination. Required is 0 when the engine could not tell.
type BufferTooSmallError struct {
	Required  int
	Available int
}

func (e *BufferTooSmallError) Error() string {
	if e.Required <= 0 {
		return fmt.Sprintf("buffer too small: %d bytes available", e.Available)
	}
	return fmt.Sprintf("buffer too small: need %d bytes, have %d", e.Required, e.Available)
}

func (e *BufferTooSmallError) Is(target error) bool { return target == ErrBufferTooSmall }

// EngineError carries an engine status code and its symbolic message.
type EngineError struct {
	Op   string
	Code int
	Msg  string
	Err  error
}

func (e *EngineError) Error() string {
	s := fmt.Sprintf("%s: %s (%d)", e.Op, e.Msg, e.Code)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *EngineError) Is(target error) bool { return target == ErrEngineFailure }
func (e *EngineError) Unwrap() error        { return e.Err }

// IOError wraps a failure to read the input or write the output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Is(target error) bool { return target == ErrIO }
func (e *IOError) Unwrap() error        { return e.Err }
