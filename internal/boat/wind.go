package boat

import "math"

// WindField supplies the global-frame wind velocity at a position. The boat
// queries it once per kinematics evaluation; a nil field means calm air.
type WindField interface {
	Wind(x, y float64) (wx, wy float64)
}

// ConstantWind is a uniform wind field.
type ConstantWind struct {
	Wx, Wy float64
}

func (w ConstantWind) Wind(x, y float64) (float64, float64) {
	return w.Wx, w.Wy
}

// WindFromPolar builds a uniform field from speed [m/s] and the direction
// the wind blows toward [rad, global frame].
func WindFromPolar(speed, direction float64) ConstantWind {
	return ConstantWind{
		Wx: speed * math.Cos(direction),
		Wy: speed * math.Sin(direction),
	}
}
