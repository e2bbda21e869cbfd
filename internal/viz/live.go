package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/soren-h/plantlab/internal/boat"
	"github.com/soren-h/plantlab/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the bubbletea program state: it owns the running simulation
// and the braille canvas it is rendered onto.
type Model struct {
	dyn        sim.Dynamics
	integrator sim.Integrator
	controller sim.Controller
	wind       boat.WindField

	state        sim.State
	initialState sim.State
	u            sim.Control
	t, dt        float64

	modelName     string
	running       bool
	canvas        *Canvas
	trail         []struct{ x, y int }
	energyHistory []float64
}

func NewModel(dyn sim.Dynamics, integ sim.Integrator, ctrl sim.Controller, wind boat.WindField, initState []float64, dt float64, modelName string) Model {
	return Model{
		dyn:           dyn,
		integrator:    integ,
		controller:    ctrl,
		wind:          wind,
		state:         sim.State(initState).Clone(),
		initialState:  sim.State(initState).Clone(),
		u:             make(sim.Control, dyn.ControlDim()),
		dt:            dt,
		modelName:     modelName,
		running:       true,
		canvas:        NewCanvas(width, height),
		trail:         make([]struct{ x, y int }, 0, 200),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.u = m.controller.Compute(m.state, m.t)
	m.state = m.integrator.Step(m.dyn, m.state, m.u, m.t, m.dt)
	m.t += m.dt

	if e, ok := m.dyn.(sim.EnergyComputer); ok {
		m.energyHistory = append(m.energyHistory, e.Energy(m.state))
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	m.u = make(sim.Control, m.dyn.ControlDim())
	m.trail = m.trail[:0]
	m.energyHistory = m.energyHistory[:0]
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	for i, v := range m.state {
		if i >= 8 {
			break
		}
		s.WriteString(labelStyle.Render(fmt.Sprintf("x%d", i)) + valueStyle.Render(fmt.Sprintf("%+.3f", v)) + "\n")
	}
	if m.wind != nil && len(m.state) >= 2 {
		wx, wy := m.wind.Wind(m.state[0], m.state[1])
		s.WriteString(labelStyle.Render("Wind") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", wx, wy)) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────\nSP:Pause R:Reset Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// project returns the canvas dot-space dimensions and center.
func (m *Model) project() (int, int, int, int) {
	cw, ch := width*2, height*4
	return cw, ch, cw / 2, ch / 2
}

func (m *Model) draw() {
	m.canvas.Clear()
	switch m.modelName {
	case "cartpole":
		m.drawCartpole()
	case "boat":
		m.drawBoat()
	default:
		m.drawBars()
	}
}

func (m *Model) drawCartpole() {
	if len(m.state) < 4 {
		return
	}
	pos, theta := m.state[0], m.state[2]
	_, ch, cx, _ := m.project()
	groundY := ch - 12
	cartX := cx + int(pos*20)

	m.canvas.DrawLine(0, groundY+4, width*2, groundY+4)
	for dy := 0; dy < 4; dy++ {
		for dx := -6; dx <= 6; dx++ {
			m.canvas.Set(cartX+dx, groundY+dy)
		}
	}
	poleLen := float64(ch) * 0.6
	px := cartX + int(poleLen*math.Sin(theta))
	py := groundY - int(poleLen*math.Cos(theta))
	m.canvas.DrawLine(cartX, groundY, px, py)
	m.canvas.Set(px, py)
}

// drawBoat is a top-down view. World x maps right, world y maps up.
// The hull is drawn as a triangle aligned with the heading, the wind
// as an arrow anchored in the corner.
func (m *Model) drawBoat() {
	if len(m.state) < 6 {
		return
	}
	x, y, psi := m.state[0], m.state[1], m.state[2]
	_, _, cx, cy := m.project()
	scale := 4.0

	px := cx + int(x*scale)
	py := cy - int(y*scale)

	m.trail = append(m.trail, struct{ x, y int }{px, py})
	if len(m.trail) > 200 {
		m.trail = m.trail[1:]
	}
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	// Triangle hull: bow plus two stern corners.
	hull := 10.0
	c, s := math.Cos(psi), math.Sin(psi)
	bowX, bowY := px+int(hull*c), py-int(hull*s)
	aftL := psi + 2.6
	aftR := psi - 2.6
	lX, lY := px+int(hull*0.6*math.Cos(aftL)), py-int(hull*0.6*math.Sin(aftL))
	rX, rY := px+int(hull*0.6*math.Cos(aftR)), py-int(hull*0.6*math.Sin(aftR))
	m.canvas.DrawLine(bowX, bowY, lX, lY)
	m.canvas.DrawLine(bowX, bowY, rX, rY)
	m.canvas.DrawLine(lX, lY, rX, rY)

	if m.wind != nil {
		wx, wy := m.wind.Wind(x, y)
		mag := math.Hypot(wx, wy)
		if mag > 1e-9 {
			ax, ay := 14, 10
			tipX := ax + int(8*wx/mag)
			tipY := ay - int(8*wy/mag)
			m.canvas.DrawLine(ax, ay, tipX, tipY)
			m.canvas.Set(tipX, tipY)
		}
	}
}

func (m *Model) drawBars() {
	cw, ch, _, cy := m.project()
	barWidth, gap := 8, 4
	if len(m.state) == 0 {
		return
	}
	totalW := len(m.state) * (barWidth + gap)
	startX := (cw - totalW) / 2
	for i, v := range m.state {
		h, bx := int(v*10), startX+i*(barWidth+gap)
		if h > ch/2 {
			h = ch / 2
		}
		if h < -ch/2 {
			h = -ch / 2
		}
		if h > 0 {
			for yy := cy; yy > cy-h; yy-- {
				for w := 0; w < barWidth; w++ {
					m.canvas.Set(bx+w, yy)
				}
			}
		} else {
			for yy := cy; yy < cy-h; yy++ {
				for w := 0; w < barWidth; w++ {
					m.canvas.Set(bx+w, yy)
				}
			}
		}
	}
}
