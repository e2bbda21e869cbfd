// Package analysis provides offline tools for recorded trajectories:
// frequency content via a radix-2 FFT and 2D phase-portrait projection.
package analysis
