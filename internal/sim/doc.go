// Package sim provides the core simulation primitives shared by the boat
// and cart-pole plants.
//
// The package defines the fundamental vocabulary for numerical simulation
// of ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [Dynamics]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: explicit fixed-step integrator interface
//   - [Controller]: feedback controller interface
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	dyn := cartpole.New(sim.State{0, 0, 0.1, 0}, cartpole.DefaultParams())
//	integ := integrators.NewRK4()
//	s := sim.New(dyn, integ, controllers.NewNone(1))
//	result, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Each plant state is exclusively
// owned by its driver; parameters are immutable and may be shared freely.
package sim
