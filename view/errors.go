package view

import "fmt"

// Error represents a view tree failure with a name and message.
// Two errors with the same Name match under errors.Is.
type Error struct {
	Name    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Is reports whether target is an *Error with the same name.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Name == e.Name
}

// Sentinels for errors.Is checks.
var (
	ErrStructureCorrupted      = &Error{Name: "StructureCorruptedError"}
	ErrEmptyElementCannotAdd   = &Error{Name: "EmptyElementCannotAddError"}
	ErrUIElementCannotAdd      = &Error{Name: "UIElementCannotAddError"}
	ErrRawElementCannotAdd     = &Error{Name: "RawElementCannotAddError"}
	ErrHierarchyRequest        = &Error{Name: "HierarchyRequestError"}
	ErrNotFound                = &Error{Name: "NotFoundError"}
	ErrIndexSize               = &Error{Name: "IndexSizeError"}
	ErrInvalidState            = &Error{Name: "InvalidStateError"}
	ErrWrongDocument           = &Error{Name: "WrongDocumentError"}
	ErrSelectionRangeIntersect = &Error{Name: "SelectionRangeIntersectsError"}
	ErrSelectionNoRanges       = &Error{Name: "SelectionNoRangesError"}
	ErrInvalidAttributeName    = &Error{Name: "InvalidAttributeNameError"}
)

func newError(sentinel *Error, message string) *Error {
	return &Error{Name: sentinel.Name, Message: message}
}

// errStructureCorrupted creates a StructureCorruptedError.
func errStructureCorrupted(message string) *Error {
	return newError(ErrStructureCorrupted, message)
}

// errHierarchyRequest creates a HierarchyRequestError.
func errHierarchyRequest(message string) *Error {
	return newError(ErrHierarchyRequest, message)
}

// errNotFound creates a NotFoundError.
func errNotFound(message string) *Error {
	return newError(ErrNotFound, message)
}

// errIndexSize creates an IndexSizeError.
func errIndexSize(message string) *Error {
	return newError(ErrIndexSize, message)
}

// errInvalidState creates an InvalidStateError.
func errInvalidState(message string) *Error {
	return newError(ErrInvalidState, message)
}

// errWrongDocument creates a WrongDocumentError.
func errWrongDocument(message string) *Error {
	return newError(ErrWrongDocument, message)
}
