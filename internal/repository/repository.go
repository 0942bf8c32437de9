// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
//
// Repositories hold no business logic. Lookups that match nothing return
// sql.ErrNoRows; services translate that into their own sentinel errors.
package repository

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("repository: duplicate key")
	// ErrConflict is returned by guarded updates whose WHERE clause no longer matches.
	ErrConflict = errors.New("repository: row changed concurrently")
)

// Transactor runs fn inside a database transaction. Repositories called with the
// ctx passed to fn take part in that transaction. Nested calls reuse the outer one.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
