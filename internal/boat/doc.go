// Package boat models a surface vessel under thruster and wind forcing.
//
// The state couples a global-frame pose with body-frame velocities and two
// adaptive-disturbance estimates that are integrated alongside the physical
// state. Actuation topology is a variant: [DifferentialThrust] for two fixed
// thrusters, [SteerableThrust] for one rotating thruster. Both share the
// kinematics, which folds in sail forces from an optional [WindField].
//
// Thrust is intentionally unsaturated here; callers enforce actuator limits.
package boat
