package di

import "reflect"

// DependencyKey names one injection on a bean, normally the property it fills.
//
//	const (
//	  KeyShoppingCart di.DependencyKey = "shoppingCart"
//	  KeyProducts     di.DependencyKey = "products"
//	)
type DependencyKey string

// Key converts a string into a DependencyKey.
func Key(name string) DependencyKey { return DependencyKey(name) }

// Bean is a constructed value plus a record of what was injected into it.
//
// The record lets a composition root or a test ask "was the cart wired into
// the order service?" without reaching into unexported fields. Each key can be
// injected once.
type Bean[T any] struct {
	id       string
	val      *T
	injected map[DependencyKey]any
	order    []DependencyKey
}

// Init constructs the value with ctor and names the bean id. The id only
// shows up in errors and logs.
func Init[T any](id string, ctor func() *T) *Bean[T] {
	return &Bean[T]{id: id, val: ctor(), injected: make(map[DependencyKey]any)}
}

// ID returns the bean id given to Init.
func (b *Bean[T]) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Value returns the constructed value, nil for a nil bean.
func (b *Bean[T]) Value() *T {
	if b == nil {
		return nil
	}
	return b.val
}

// Keys returns the injected keys in the order they were injected.
func (b *Bean[T]) Keys() []DependencyKey {
	if b == nil {
		return nil
	}
	return append([]DependencyKey(nil), b.order...)
}

// Has reports whether key was injected.
func (b *Bean[T]) Has(key DependencyKey) bool {
	_, ok := b.Lookup(key)
	return ok
}

// Lookup returns what was injected under key: the dependency pointer for Ref,
// the literal for Value.
func (b *Bean[T]) Lookup(key DependencyKey) (any, bool) {
	if b == nil {
		return nil, false
	}
	raw, ok := b.injected[key]
	return raw, ok
}

// Injector wires one dependency into a bean.
type Injector[T any] func(*Bean[T]) error

// With applies injectors in order and stops at the first failure, which is
// returned as a WiringError naming the bean. Nil injectors are skipped.
// Injections made before the failure stay in place.
func (b *Bean[T]) With(injs ...Injector[T]) error {
	for _, inj := range injs {
		if inj == nil {
			continue
		}
		if err := inj(b); err != nil {
			return WiringError{Bean: b.ID(), Err: err}
		}
	}
	return nil
}

// Ref injects another bean's value through bind, the equivalent of a property
// pointing at a bean reference. The dependency pointer is what gets recorded.
//
// It fails with ErrNilTarget, NilBindError, DuplicateKeyError or, when dep or
// its value is nil, NilDependencyServiceError.
func Ref[T any, D any](key DependencyKey, dep *Bean[D], bind func(target *T, dependency *D)) Injector[T] {
	return func(b *Bean[T]) error {
		if err := b.accept(key, bind == nil); err != nil {
			return err
		}
		d := dep.Value()
		if d == nil {
			return NilDependencyServiceError{Key: key}
		}
		bind(b.val, d)
		b.record(key, d)
		return nil
	}
}

// Value injects a literal through bind, the equivalent of a property with an
// inline value or list. The literal is recorded as given.
func Value[T any, V any](key DependencyKey, val V, bind func(target *T, value V)) Injector[T] {
	return func(b *Bean[T]) error {
		if err := b.accept(key, bind == nil); err != nil {
			return err
		}
		bind(b.val, val)
		b.record(key, val)
		return nil
	}
}

func (b *Bean[T]) accept(key DependencyKey, nilBind bool) error {
	switch {
	case b == nil || b.val == nil:
		return ErrNilTarget
	case nilBind:
		return NilBindError{Key: key}
	}
	if _, dup := b.injected[key]; dup {
		return DuplicateKeyError{Key: key}
	}
	return nil
}

func (b *Bean[T]) record(key DependencyKey, raw any) {
	if b.injected == nil {
		b.injected = make(map[DependencyKey]any)
	}
	b.injected[key] = raw
	b.order = append(b.order, key)
}

// RefOf returns the reference injected under key as *D.
//
//	cart, err := di.RefOf[order.ShoppingCart](svcBean, order.KeyShoppingCart)
func RefOf[D any, T any](b *Bean[T], key DependencyKey) (*D, error) {
	raw, ok := b.Lookup(key)
	if !ok || raw == nil {
		return nil, MissingDependencyError{Key: key}
	}
	d, ok := raw.(*D)
	if !ok {
		return nil, WrongTypeDependencyError{Key: key, GotType: reflect.TypeOf(raw).String()}
	}
	return d, nil
}

// MustRefOf is RefOf for composition roots that treat a missing reference as
// a programming error. It panics with the RefOf error.
func MustRefOf[D any, T any](b *Bean[T], key DependencyKey) *D {
	d, err := RefOf[D](b, key)
	if err != nil {
		panic(err)
	}
	return d
}
