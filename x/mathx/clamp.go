package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi.
// Unlike Clamp the bounds are taken as given: an inverted range contains nothing.
func Between[T constraints.Ordered](v, lo, hi T) bool {
	return v >= lo && v <= hi
}

// StepToward moves cur by at most step toward target without overshooting.
func StepToward[T constraints.Signed](cur, target, step T) T {
	if step <= 0 {
		return cur
	}
	switch {
	case cur < target:
		if target-cur <= step {
			return target
		}
		return cur + step
	case cur > target:
		if cur-target <= step {
			return target
		}
		return cur - step
	default:
		return cur
	}
}

// Scale maps x in [inMin,inMax] onto [outMin,outMax] with 64-bit intermediates.
// x is clamped to the input range first; a degenerate input range yields outMin.
func Scale[T constraints.Integer](x, inMin, inMax, outMin, outMax T) T {
	if inMax == inMin {
		return outMin
	}
	x = Clamp(x, inMin, inMax)
	num := (int64(x) - int64(inMin)) * (int64(outMax) - int64(outMin))
	den := int64(inMax) - int64(inMin)
	return T(int64(outMin) + num/den)
}
