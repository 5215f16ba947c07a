package schema

// Schema validates a value without panicking. Parse returns the accepted
// value, possibly transformed (defaults applied, numbers normalized), or an
// error describing why the value was rejected.
type Schema interface {
	Parse(value any) (any, error)
}

// Func adapts a function to the Schema interface.
type Func func(value any) (any, error)

// Parse calls f(value).
func (f Func) Parse(value any) (any, error) {
	return f(value)
}

// Entry pairs a key with the schema registered under it.
type Entry struct {
	Key    Key
	Schema Schema
}
