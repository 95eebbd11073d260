// Package collection holds generic slice helpers used across the services:
//
//	ids := collection.Map(items, func(i models.CartItem) uint { return i.VehicleID })
//	low := collection.Filter(vs, func(v models.Vehicle) bool { return v.Stock == 0 })
package collection

// Map builds a new slice by applying fn to every element.
func Map[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// Filter keeps the elements fn accepts.
func Filter[T any](items []T, fn func(T) bool) []T {
	var out []T
	for _, item := range items {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out
}

// First returns the first element fn accepts, or (zero, false) when none
// matches.
func First[T any](items []T, fn func(T) bool) (T, bool) {
	for _, item := range items {
		if fn(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether fn accepts any element.
func Contains[T any](items []T, fn func(T) bool) bool {
	_, ok := First(items, fn)
	return ok
}

// GroupBy buckets elements under the key fn derives for each.
func GroupBy[T any](items []T, fn func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, item := range items {
		key := fn(item)
		out[key] = append(out[key], item)
	}
	return out
}

// Reduce folds the slice into one value, seeded with init.
func Reduce[T, R any](items []T, init R, fn func(R, T) R) R {
	acc := init
	for _, item := range items {
		acc = fn(acc, item)
	}
	return acc
}
