package vec

import "github.com/pkg/errors"

// Contract violations. Operations panic with these wrapped in context; match with errors.Is.
var (
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrZeroSizedElem    = errors.New("zero-sized element types are not supported")
	ErrPointerElem      = errors.New("element type holds pointers and cannot live in raw memory")
	ErrCapacityOverflow = errors.New("capacity overflow")
	ErrMoved            = errors.New("use of moved vector")
	ErrBorrowed         = errors.New("vector is borrowed by a drain")
)
