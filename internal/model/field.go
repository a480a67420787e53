package model

import "fmt"

// Field is one tag value together with where it came from.
//
// A Field is either detected (Source names the rule that matched), defaulted
// (Present but Source empty) or absent (Present false).
type Field[T comparable] struct {
	Value   T
	Present bool
	Source  string
}

// Detected creates a Field found by the rule labelled source.
func Detected[T comparable](value T, source string) Field[T] {
	return Field[T]{Value: value, Present: true, Source: source}
}

// Default creates a Field carrying a fallback value with no provenance.
func Default[T comparable](value T) Field[T] {
	return Field[T]{Value: value, Present: true}
}

// None creates an absent Field.
func None[T comparable]() Field[T] {
	return Field[T]{}
}

// IsDetected reports whether a rule produced the value.
func (f Field[T]) IsDetected() bool {
	return f.Present && f.Source != ""
}

// String renders the value, or an empty string when absent.
func (f Field[T]) String() string {
	if !f.Present {
		return ""
	}
	return fmt.Sprint(f.Value)
}

// TagRecord is the finished set of tag values for one bundle.
type TagRecord struct {
	Title     Field[string]
	Artist    Field[string]
	Album     Field[string]
	Year      Field[uint16]
	Composers Field[string]

	// Comment summarizes the source document.
	Comment string
}
