package sim

import "math"

// WrapAngle normalizes an angle into the canonical range around zero
// using (a+pi) mod 2pi - pi. math.Mod keeps the sign of the dividend,
// so negative remainders are shifted up before subtracting pi.
func WrapAngle(a float64) float64 {
	m := math.Mod(a+math.Pi, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m - math.Pi
}
