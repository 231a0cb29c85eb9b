// Package guard detects value objects and commands that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not a valid instance.
// Only NewConstructorGuard marks the guard as constructed, so a struct literal
// or a zero value fails Validate.
//
// Example:
//
//	type RankOrdersQuery struct {
//	    records []order.Record
//	    guard   guard.ConstructorGuard
//	}
//
//	func (q RankOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrRankOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError, or ErrDefaultConstructorGuard when it is nil,
// if the guard was not created through NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
