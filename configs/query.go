package configs

import (
	"errors"
	"iter"
	"slices"
)

// Configurable is implemented by types read from a fixed config path.
type Configurable interface {
	ConfigPath() string
}

// First decodes the value at path from the highest precedence file defining it,
// or returns the zero value.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}

// All decodes the value at path from every file defining it, highest precedence first.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value, err := range loader.IterCueValues(path) {
			if err != nil {
				panic(err)
			}
			var v T
			if err := value.Decode(&v); err != nil {
				panic(wrap(err))
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Get reads T from its own config path.
func Get[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigPath())
}

// Layers reads T from every file defining its path, lowest precedence first,
// for values that merge across files instead of shadowing.
func Layers[T Configurable](loader Loader) []T {
	var zero T
	ret := slices.Collect(All[T](loader, zero.ConfigPath()))
	slices.Reverse(ret)
	return ret
}
