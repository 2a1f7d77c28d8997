package extract

import "fmt"

// UnsupportedFormatError indicates the resume format could not be recognized
// from either the MIME type or the filename extension.
type UnsupportedFormatError struct {
	MimeType string
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format (mime=%q, filename=%q)", e.MimeType, e.Filename)
}

// ExtractionError indicates a recognized format's byte stream could not be
// decoded into text. It wraps the underlying decoder error.
type ExtractionError struct {
	Format string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s resume: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
