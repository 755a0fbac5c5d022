// Package apperr defines the failure taxonomy shared by the project and
// artifact generators.
//
// Every domain failure is an *Error carrying a Kind. Kinds implement error
// themselves, so callers branch with errors.Is:
//
//	if errors.Is(err, apperr.NoProjectFound) {
//	    printer.Error("run this command inside a tsui5 project")
//	}
package apperr

import "fmt"

// Kind classifies a failure.
type Kind string

func (k Kind) Error() string {
	return string(k)
}

const (
	InvalidName      Kind = "invalid name"
	DuplicateTarget  Kind = "duplicate target"
	NoProjectFound   Kind = "no project found"
	UnknownGenerator Kind = "unknown generator"
	RenderFailure    Kind = "render failure"
	ManifestCorrupt  Kind = "manifest corrupt"
	CorruptState     Kind = "corrupt project state"
)

// Error is a classified failure with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind with a formatted message.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
