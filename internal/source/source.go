// Package source resolves the parser façade's source input — a string, a
// file path, or an abstract Readable — to a contents-bearing value. This
// is the "small factory" the external interface names; parsing itself
// never touches a filesystem beyond this one collaborator.
package source

import "os"

// Readable exposes only Contents, matching the external-interface
// contract: readables carry nothing else.
type Readable interface {
	Contents() (string, error)
}

// StringSource wraps an in-memory string as a Readable.
type StringSource string

// Contents implements Readable.
func (s StringSource) Contents() (string, error) {
	return string(s), nil
}

// FileSource reads Path's contents lazily, on Contents, rather than at
// construction.
type FileSource struct {
	Path string
}

// Contents implements Readable.
func (f FileSource) Contents() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Resolve accepts a string or a Readable and returns its contents as a
// string; any other value yields an *UnsupportedSourceError. A bare string is treated as
// literal source text, not a path — callers that want file input pass a
// FileSource explicitly.
func Resolve(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case Readable:
		return v.Contents()
	default:
		return "", &UnsupportedSourceError{Value: src}
	}
}

// UnsupportedSourceError reports a Parse call given a source value that is
// neither a string nor a Readable.
type UnsupportedSourceError struct {
	Value any
}

func (e *UnsupportedSourceError) Error() string {
	return "source: unsupported source value (want string or source.Readable)"
}
