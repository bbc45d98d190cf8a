// Package guard provides ConstructorGuard, a marker embedded in value objects, commands and
// queries so that zero values created with a struct literal can be told apart from values
// built by their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard. Its zero value fails Validate.
//
// Example:
//
//	type Quote struct {
//	    total float64
//	    guard guard.ConstructorGuard
//	}
//
//	func NewQuote(total float64) Quote {
//	    return Quote{total: total, guard: guard.NewConstructorGuard()}
//	}
//
//	func (q Quote) Validate() error {
//	    return q.guard.Validate(ErrQuoteIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
