package migration

import "fmt"

// ParseError reports which file failed and why.
// Err is one of the migembed parse sentinels, possibly wrapping a cause.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
