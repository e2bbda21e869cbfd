package boat

// Parameters holds the physical constants of the vessel. They are passed by
// value and never mutated by the dynamics.
type Parameters struct {
	Mass       float64    // [kg]
	Inertia    float64    // yaw inertia [kg*m^2]
	Damping    [3]float64 // linear damping: surge, sway, yaw
	L          float64    // thruster lever arm from the center of mass [m]
	AirDensity float64    // [kg/m^3]
	SailCx     float64    // surge drag coefficient of the sail
	SailCy     float64    // sway drag coefficient of the sail
	SailArea   float64    // [m^2]
}

func DefaultParameters() Parameters {
	return Parameters{
		Mass:       50.0,
		Inertia:    20.0,
		Damping:    [3]float64{0.5, 0.8, 0.6},
		L:          1.0,
		AirDensity: 1.225,
		SailCx:     0.8,
		SailCy:     1.2,
		SailArea:   10.0,
	}
}
