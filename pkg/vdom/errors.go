package vdom

import "github.com/vango-dev/reactor/internal/errors"

var (
	// ErrNotHandler is reported when an event prop holds a non-function
	// value. The handler is not bound.
	ErrNotHandler = errors.New("V001")

	// ErrNoSibling is reported when a strategy needing sibling lookups runs
	// on a host without SiblingHost; the quick strategy is used instead.
	ErrNoSibling = errors.New("V002")

	// ErrDuplicateKey is reported when a child list repeats a key.
	ErrDuplicateKey = errors.New("V003")

	// ErrNoProperty is reported when a render context lookup misses.
	ErrNoProperty = errors.New("C001")

	// ErrNoEmitHandler is reported when an emitted event has no handler.
	ErrNoEmitHandler = errors.New("C002")

	// ErrUndeclaredProp is reported when a component receives a prop it
	// does not declare; the value is passed through as an attribute.
	ErrUndeclaredProp = errors.New("C003")
)
