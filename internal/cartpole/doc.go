// Package cartpole implements the inverted pendulum on a cart, with a
// batched form of the dynamics for evaluating many samples at once.
package cartpole
