package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is passed
// as the validation error, so that validation always fails with a meaningful
// message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and commands are only created through
// their designated constructor functions. A zero-value struct carries a
// zero-value guard and fails validation, which makes it impossible to smuggle
// an unvalidated object past a Validate call.
//
// Embed a guard in the struct and set it in the constructor:
//
//	type TakeOrderCommand struct {
//	    orderID int64
//	    guard   ConstructorGuard
//	}
//
//	func NewTakeOrderCommand(orderID int64) (TakeOrderCommand, error) {
//	    if orderID <= 0 {
//	        return TakeOrderCommand{}, errors.New("order id must be positive")
//	    }
//	    return TakeOrderCommand{orderID: orderID, guard: NewConstructorGuard()}, nil
//	}
//
//	func (c TakeOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it only from the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object went through its constructor.
// Returns nil for constructed objects, validationError for zero values, and
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
