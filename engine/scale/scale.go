package scale

import "math"

func clamp(t, min, max float64) float64 {
	min, max = math.Min(min, max), math.Max(min, max)
	return math.Max(math.Min(t, max), min)
}

// linear returns a function that maps the interval [dMin,dMax] onto [rMin,rMax] without clamping.
func linear(dMin, dMax, rMin, rMax float64) func(float64) float64 {
	return func(x float64) float64 {
		if dMax == dMin {
			return rMin
		}
		return rMin + (x-dMin)*(rMax-rMin)/(dMax-dMin)
	}
}

// clamped behaves like linear but clamps the result to [rMin,rMax].
func clamped(dMin, dMax, rMin, rMax float64) func(float64) float64 {
	lin := linear(dMin, dMax, rMin, rMax)
	return func(x float64) float64 {
		return clamp(lin(x), rMin, rMax)
	}
}

// ToUnitClamp returns a function that scales a number from the interval [rMin,rMax]
// to the unit interval ([0,1]), if the result falls outside [0,1], it is clamped
// to 0 or 1.
func ToUnitClamp(rMin, rMax float64) func(m float64) float64 {
	return clamped(rMin, rMax, 0, 1)
}
