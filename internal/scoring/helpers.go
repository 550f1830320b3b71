package scoring

import "math"

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp100(x float64) float64 { return clamp(x, 0, 100) }

// ratio divides with a zero-denominator guard: an empty denominator means
// the signal is absent, which scores 0, never NaN.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// logScale maps a count onto [0,100] with diminishing returns:
// log10(count+1)/log10(ref), capped at 1, times 100.
func logScale(count float64, ref float64) float64 {
	if count <= 0 || ref <= 1 {
		return 0
	}
	v := math.Log10(count+1) / math.Log10(ref)
	if v > 1 {
		v = 1
	}
	return v * 100
}

// linearScale maps value linearly onto [0,100] saturating at max.
func linearScale(value, max float64) float64 {
	if max <= 0 || value <= 0 {
		return 0
	}
	return clamp100(value / max * 100)
}

// monthsBetween returns fractional months in a duration of days.
func monthsInDays(days float64) float64 {
	return days / 30.44
}
