package record

// Opt holds a value that may be absent from a record.
type Opt[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether the value is present.
func (o Opt[T]) Present() bool {
	return o.ok
}

// Or returns the value, or def when the value is absent.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Required returns the value of a field that must be present. The returned
// error is a *FieldError naming the field.
func Required[T any](field string, o Opt[T]) (T, error) {
	if v, ok := o.Get(); ok {
		return v, nil
	}
	var zero T
	return zero, &FieldError{Field: field}
}
