package testutil

import (
	"errors"
)

const DatabaseError = "database error occurred"

// OperationResult is the canned return of a mocked call, used on table tests.
type OperationResult[T any] struct {
	Data T
	Err  error
}

// GetMockRepoError returns a typed database failure.
func GetMockRepoError[T any]() *OperationResult[T] {
	return NewErrorResult[T](DatabaseError)
}

func NewErrorResult[T any](err string) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  errors.New(err),
	}
}

// Wrap a generic Data into a OperationResult struct.
func NewSuccessResult[T any](data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: data,
		Err:  nil,
	}
}
