package utils

import "golang.org/x/exp/constraints"

// Clamp limits t to the closed interval [min, max]. The bounds may be given in either order.
func Clamp[T constraints.Ordered](t, min, max T) T {
	if min > max {
		min, max = max, min
	}
	if t < min {
		return min
	}
	if t > max {
		return max
	}
	return t
}

// InRange reports whether val lies within [low, high].
func InRange[T constraints.Ordered](val, low, high T) bool {
	return val >= low && val <= high
}
