package boat_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soren-h/plantlab/internal/boat"
	"github.com/soren-h/plantlab/internal/sim"
)

var _ = Describe("boat kinematics", func() {
	var params boat.Parameters

	BeforeEach(func() {
		params = boat.Parameters{
			Mass:       10.0,
			Inertia:    5.0,
			L:          1.0,
			AirDensity: 1.0,
			SailCx:     1.0,
			SailCy:     1.0,
			SailArea:   2.0,
		}
	})

	Describe("position rates", func() {
		It("rotates body velocity into the global frame", func() {
			st := &boat.State{Psi: math.Pi / 2, Vx: 1.0}
			b := boat.NewDifferentialThrustBoat(st, params, nil)

			d := b.Dynamics(sim.Control{0, 0})

			Expect(d[0]).To(BeNumerically("~", 0.0, 1e-12))
			Expect(d[1]).To(BeNumerically("~", 1.0, 1e-12))
		})

		It("reports yaw rate as the heading derivative", func() {
			st := &boat.State{Omega: 0.25}
			b := boat.NewDifferentialThrustBoat(st, params, nil)

			d := b.Dynamics(sim.Control{0, 0})

			Expect(d[2]).To(Equal(0.25))
		})
	})

	Describe("wind coupling", func() {
		It("pushes a resting hull downwind", func() {
			st := &boat.State{}
			b := boat.NewDifferentialThrustBoat(st, params, boat.ConstantWind{Wx: 4.0})

			d := b.Dynamics(sim.Control{0, 0})

			// 0.5 * rho * A * Cx * w / mass = 0.5*1*2*1*4/10
			Expect(d[3]).To(BeNumerically("~", 0.4, 1e-12))
			Expect(d[4]).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("produces no force when the hull matches the wind", func() {
			st := &boat.State{Vx: 4.0}
			b := boat.NewDifferentialThrustBoat(st, params, boat.ConstantWind{Wx: 4.0})

			d := b.Dynamics(sim.Control{0, 0})

			Expect(d[3]).To(BeNumerically("~", 0.0, 1e-12))
		})

		It("sees crosswind in the sway axis after rotating into the body frame", func() {
			st := &boat.State{Psi: math.Pi / 2}
			b := boat.NewDifferentialThrustBoat(st, params, boat.ConstantWind{Wx: 3.0})

			d := b.Dynamics(sim.Control{0, 0})

			// A global +x wind on a hull heading +y is pure sway wind.
			Expect(d[3]).To(BeNumerically("~", 0.0, 1e-9))
			Expect(d[4]).To(BeNumerically("~", -0.5*1.0*2.0*1.0*3.0/10.0, 1e-9))
		})
	})

	Describe("drag", func() {
		It("decays each body velocity with its own coefficient", func() {
			params.Damping = [3]float64{0.1, 0.2, 0.3}
			st := &boat.State{Vx: 1.0, Vy: 2.0, Omega: 3.0}
			b := boat.NewDifferentialThrustBoat(st, params, nil)

			d := b.Dynamics(sim.Control{0, 0})

			Expect(d[3]).To(BeNumerically("~", -0.1, 1e-12))
			Expect(d[4]).To(BeNumerically("~", -0.4, 1e-12))
			Expect(d[5]).To(BeNumerically("~", -0.9, 1e-12))
		})
	})

	Describe("steerable thruster", func() {
		It("couples a positive vane angle into both sway force and yaw moment", func() {
			st := &boat.State{}
			b := boat.NewSteerableThrustBoat(st, params, nil)

			d := b.Dynamics(sim.Control{5.0, 0.4})

			Expect(d[4]).To(BeNumerically(">", 0.0))
			Expect(d[5]).To(BeNumerically(">", 0.0))
		})
	})
})
