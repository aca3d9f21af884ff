package webdispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHandler matches every *MissingHandlerError.
	ErrMissingHandler = errors.New("webdispatch: missing handler")

	// ErrMissingAction matches every *MissingActionError.
	ErrMissingAction = errors.New("webdispatch: missing action")

	// ErrInvalidResult indicates an action returned a Result that is neither
	// NoResponse nor Respond with a non-nil response.
	ErrInvalidResult = errors.New("webdispatch: invalid action result")

	// ErrPanic indicates a handler panicked and the panic was recovered.
	ErrPanic = errors.New("webdispatch: handler panic")
)

// MissingHandlerError is returned when a request cannot be resolved to a
// concrete handler. The fields are copied verbatim from the request. The
// same error is returned for an invalid name, an unknown type and an
// abstract or interface type.
type MissingHandlerError struct {
	Handler string
	Plugin  string
	Prefix  string
	Ext     string
}

func missingHandler(req Request) *MissingHandlerError {
	return &MissingHandlerError{
		Handler: req.Param(ParamController),
		Plugin:  req.Param(ParamPlugin),
		Prefix:  req.Param(ParamPrefix),
		Ext:     req.Param(ParamExt),
	}
}

func (e *MissingHandlerError) Error() string {
	name := e.Handler + Category
	if e.Prefix != "" {
		name = e.Prefix + Separator + name
	}
	if e.Plugin != "" {
		name = e.Plugin + "." + name
	}
	return fmt.Sprintf("Controller class %s could not be found.", name)
}

func (e *MissingHandlerError) Is(target error) bool { return target == ErrMissingHandler }

// MissingActionError is returned by Base when the requested action is not
// registered on the handler.
type MissingActionError struct {
	Handler string
	Action  string
}

func (e *MissingActionError) Error() string {
	return fmt.Sprintf("action %s::%s() could not be found, or is not accessible", e.Handler+Category, e.Action)
}

func (e *MissingActionError) Is(target error) bool { return target == ErrMissingAction }

// panicError carries a recovered panic value and stack.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("%v: %v\n%s", ErrPanic, e.value, e.stack)
}

func (e *panicError) Unwrap() error { return ErrPanic }
