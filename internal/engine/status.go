package engine

import "fmt"

// Status is the engine's result code. Negative values are failures.
type Status int32

const (
	StatusOK         Status = 0
	StatusFormat     Status = -1 // not a decodable image
	StatusDecompress Status = -2 // decode failed after the header
	StatusTransform  Status = -3 // rescale failed
	StatusCompress   Status = -4 // encoder failed
	StatusBuffer     Status = -5 // fixed destination too small
	StatusParams     Status = -6 // malformed options word
	StatusUnknown    Status = -99
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusFormat:
		return "ERR_FORMAT"
	case StatusDecompress:
		return "ERR_DECOMPRESS"
	case StatusTransform:
		return "ERR_TRANSFORM"
	case StatusCompress:
		return "ERR_COMPRESS"
	case StatusBuffer:
		return "ERR_BUFFER"
	case StatusParams:
		return "ERR_PARAMS"
	default:
		return "ERR_UNKNOWN"
	}
}

// Error is a failed engine call.
type Error struct {
	Status Status
	// Required is the full output size when Status is StatusBuffer.
	Required int
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Status, e.Err)
	}
	return e.Status.String()
}

func (e *Error) Unwrap() error { return e.Err }

func fail(s Status, err error) *Error {
	return &Error{Status: s, Err: err}
}
