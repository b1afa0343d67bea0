package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrCorpusNotInstalled reports a root that is not a local directory, such
	// as an archive that has not been extracted.
	ErrCorpusNotInstalled = errors.New("corpus not installed")
	// ErrMappingFileMissing reports that table.txt is absent from the listing.
	ErrMappingFileMissing = errors.New("language mapping file missing")
	// ErrLanguageNotFound reports an ISO code with no mapping or no loaded data.
	ErrLanguageNotFound = errors.New("language not found")
	// ErrNgramFileMissing reports a mapped language whose n-gram file is absent.
	ErrNgramFileMissing = errors.New("n-gram file missing")
	// ErrMalformedLine reports a mapping or n-gram line with the wrong shape.
	ErrMalformedLine = errors.New("malformed line")
)

// LineError describes a malformed line. It matches ErrMalformedLine with errors.Is.
type LineError struct {
	File   string
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *LineError) Error() string {
	msg := fmt.Sprintf("%s: %s:%d: %s", ErrMalformedLine, e.File, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LineError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedLine}
	}
	return []error{ErrMalformedLine, e.Err}
}

// Error kinds returned by ErrorKind.
const (
	KindConfiguration = "configuration"
	KindNotFound      = "not_found"
	KindValidation    = "validation"
)

// ErrorKind classifies err into a coarse kind so callers can choose a hint or
// exit path without matching every sentinel. Unrecognized errors return "".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCorpusNotInstalled), errors.Is(err, ErrMappingFileMissing):
		return KindConfiguration
	case errors.Is(err, ErrLanguageNotFound), errors.Is(err, ErrNgramFileMissing):
		return KindNotFound
	case errors.Is(err, ErrMalformedLine):
		return KindValidation
	default:
		return ""
	}
}
