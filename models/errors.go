package models

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateResource = errors.New("duplicate resource")
	ErrNotFound          = errors.New("not found")
	ErrTableOperate      = errors.New("invalid table operation")
)

// OpError carries a user-facing message and unwraps to one of the error kinds above.
type OpError struct {
	Kind    error
	Message string
}

func (e *OpError) Error() string {
	return e.Message
}

func (e *OpError) Unwrap() error {
	return e.Kind
}

func duplicateTable(name string) error {
	return &OpError{Kind: ErrDuplicateResource, Message: fmt.Sprintf("table %s already exists", name)}
}

func tableNotFound(name string) error {
	return &OpError{Kind: ErrNotFound, Message: fmt.Sprintf("table %s not found", name)}
}

func tableAlreadyBooked(name string) error {
	return &OpError{
		Kind:    ErrTableOperate,
		Message: fmt.Sprintf("%s is already booked, release it first or choose another one", name),
	}
}

func tableIsFree(name string) error {
	return &OpError{Kind: ErrTableOperate, Message: fmt.Sprintf("%s is free", name)}
}
