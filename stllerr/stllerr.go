// SPDX-License-Identifier: Unlicense OR MIT

// Package stllerr defines the closed set of error kinds the layout engine
// can raise. Every kind carries the slash-path of the offending DOM
// ancestry, e.g. "/html/body/table/tr/td", so a caller can report where in
// the document the failure occurred.
package stllerr

import "fmt"

// Kind identifies the class of layout failure.
type Kind int

const (
	// ParseError indicates malformed XHTML input.
	ParseError Kind = iota
	// UnexpectedTag indicates a DOM element not permitted in its context.
	UnexpectedTag
	// UnexpectedAttribute indicates an attribute not permitted on its element.
	UnexpectedAttribute
	// BadValue indicates an unsupported size unit or malformed color value.
	BadValue
	// FontNotFound indicates no face in a family matches the requested quadruple.
	FontNotFound
	// ShapeTooNarrow indicates a shape cannot host a single indivisible cluster.
	ShapeTooNarrow
	// TooManyColumns indicates a table row has more cells than its colgroup defines.
	TooManyColumns
	// BadSpan indicates a malformed rowspan/colspan/col-span attribute.
	BadSpan
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case UnexpectedTag:
		return "UnexpectedTag"
	case UnexpectedAttribute:
		return "UnexpectedAttribute"
	case BadValue:
		return "BadValue"
	case FontNotFound:
		return "FontNotFound"
	case ShapeTooNarrow:
		return "ShapeTooNarrow"
	case TooManyColumns:
		return "TooManyColumns"
	case BadSpan:
		return "BadSpan"
	default:
		return "Unknown"
	}
}

// Error is the single error type every layout operation returns. Layout
// aborts entirely on the first Error raised; there is no partial-result mode.
type Error struct {
	Kind Kind
	// Path is the slash-separated DOM ancestry of the offending node, e.g.
	// "/html/body/table/tr/td". Empty when not applicable (e.g. ParseError).
	Path string
	// Offset is a byte offset into the source XHTML, used by ParseError.
	Offset int
	// Window is a human-readable excerpt around Offset, used by ParseError.
	Window string
	Msg    string
	Cause  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ParseError:
		return fmt.Sprintf("%s at offset %d near %q: %s", e.Kind, e.Offset, e.Window, e.Msg)
	case e.Path != "":
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Path, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a path-qualified Error.
func New(kind Kind, path, msg string) *Error {
	return &Error{Kind: kind, Path: path, Msg: msg}
}

// Newf builds a path-qualified Error with a formatted message.
func Newf(kind Kind, path, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a path-qualified Error around an underlying cause.
func Wrap(kind Kind, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Msg: cause.Error(), Cause: cause}
}

// NewParse builds a ParseError carrying a source offset and a context window.
func NewParse(offset int, src, msg string) *Error {
	const radius = 20
	lo := offset - radius
	if lo < 0 {
		lo = 0
	}
	hi := offset + radius
	if hi > len(src) {
		hi = len(src)
	}
	window := ""
	if lo < hi {
		window = src[lo:hi]
	}
	return &Error{Kind: ParseError, Offset: offset, Window: window, Msg: msg}
}
