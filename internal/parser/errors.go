package parser

import "errors"

var (
	// ErrUnsupportedFormat marks file extensions the loader cannot ingest.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnreadablePDF marks PDFs whose structure or text layer cannot be read.
	ErrUnreadablePDF = errors.New("unreadable pdf")
)
