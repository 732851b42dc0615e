package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Parsing and file errors
	ErrFormat         = fmt.Errorf("format error")
	ErrIncompleteFile = fmt.Errorf("incomplete file")
	ErrSchema         = fmt.Errorf("schema mismatch")
	ErrNotFound       = fmt.Errorf("not found")
	ErrFileExists     = fmt.Errorf("file already exists")

	// Record errors
	ErrInvalidRecord = fmt.Errorf("invalid record")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
