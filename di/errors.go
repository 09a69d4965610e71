package di

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNilTarget is returned when an injector is applied to a nil bean
	// or a bean with a nil Val.
	ErrNilTarget = errors.New("di: nil target bean")

	// ErrNilDep is returned when a reference points at a nil bean. Ref reports
	// the keyed form (NilDependencyServiceError), which matches ErrNilDep via errors.Is.
	ErrNilDep = errors.New("di: nil dependency bean")

	// ErrNilBind is returned when an injector is created with a nil bind function.
	// Ref and Value report the keyed form (NilBindError), which matches ErrNilBind via errors.Is.
	ErrNilBind = errors.New("di: nil bind function")

	// ErrPropertyPanic is returned if a property source panics internally.
	ErrPropertyPanic = errors.New("di: panic during property resolve")
)

// DuplicateKeyError is returned when an injector attempts to record a reference
// under a key that already exists in the target Bean.
type DuplicateKeyError struct{ Key DependencyKey }

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	// Example: di: duplicate dependency key "shoppingCart"
	return "di: duplicate dependency key " + strconv.Quote(string(e.Key))
}

// MissingDependencyError is returned when a key is not present.
//
// RefOf uses it to tell "missing" apart from "wrong type", and
// ViperProperties.Decode uses it for a missing sub-tree.
type MissingDependencyError struct{ Key DependencyKey }

// Error implements the error interface.
func (e MissingDependencyError) Error() string {
	return "di: dependency " + strconv.Quote(string(e.Key)) + " missing"
}

// WrongTypeDependencyError is returned when a key exists but holds a different type.
type WrongTypeDependencyError struct {
	// Key is the dependency key requested.
	Key DependencyKey

	// GotType is reflect.TypeOf(raw).String() for the stored value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeDependencyError) Error() string {
	// Example: di: dependency "shoppingCart" has wrong type (*order.Product)
	return "di: dependency " + strconv.Quote(string(e.Key)) + " has wrong type (" + e.GotType + ")"
}

// NilDependencyServiceError indicates a nil dependency bean for a specific key.
type NilDependencyServiceError struct{ Key DependencyKey }

// Error implements the error interface.
func (e NilDependencyServiceError) Error() string {
	return "di: nil dependency bean for key " + strconv.Quote(string(e.Key))
}

// Is reports ErrNilDep as the generic form of this error.
func (e NilDependencyServiceError) Is(target error) bool { return target == ErrNilDep }

// NilBindError indicates a nil bind function for a specific key.
type NilBindError struct{ Key DependencyKey }

// Error implements the error interface.
func (e NilBindError) Error() string {
	return "di: nil bind function for key " + strconv.Quote(string(e.Key))
}

// Is reports ErrNilBind as the generic form of this error.
func (e NilBindError) Is(target error) bool { return target == ErrNilBind }

// UnknownRefError is returned when a definition refers to a bean id that was
// never defined.
type UnknownRefError struct {
	// From is the id of the bean holding the reference.
	From string

	// Ref is the id that could not be found.
	Ref string
}

// Error implements the error interface.
func (e UnknownRefError) Error() string {
	// Example: di: bean "shoppingCart" refers to unknown bean "product9"
	return "di: bean " + strconv.Quote(e.From) + " refers to unknown bean " + strconv.Quote(e.Ref)
}

// WiringError reports which bean failed to wire. Err is the injector's error.
type WiringError struct {
	Bean string
	Err  error
}

// Error implements the error interface.
func (e WiringError) Error() string {
	// Example: di: bean "orderService": duplicate dependency key "shoppingCart"
	return "di: bean " + strconv.Quote(e.Bean) + ": " + strings.TrimPrefix(e.Err.Error(), "di: ")
}

// Unwrap exposes the injector's error to errors.Is and errors.As.
func (e WiringError) Unwrap() error { return e.Err }
