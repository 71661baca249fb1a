package model

import "fmt"

// MissingFileError is returned when a roster or lap file does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("File %s not found!", e.Path)
}

// MalformedLineError is returned for a line that cannot be parsed. Line is
// 1-based.
type MalformedLineError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.Path, e.Line, e.Reason, e.Text)
}
