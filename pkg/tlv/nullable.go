package tlv

// Nullable holds a value that may be explicitly null. Combined with a
// pointer it models the three field states: absent (nil pointer), null, and
// present with a value.
type Nullable[T any] struct {
	value T
	valid bool
}

// Null returns a null Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// NotNull returns a Nullable holding v.
func NotNull[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, valid: true}
}

// IsNull reports whether n is null.
func (n Nullable[T]) IsNull() bool { return !n.valid }

// Value returns the held value and whether it is non-null.
func (n Nullable[T]) Value() (T, bool) { return n.value, n.valid }

// MarshalYAML renders null as ~ and otherwise the value itself.
func (n Nullable[T]) MarshalYAML() (any, error) {
	if !n.valid {
		return nil, nil
	}
	return n.value, nil
}
