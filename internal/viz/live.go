package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/toralab/internal/ode"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 600
	stepsPerTick    = 4
)

type TickMsg time.Time

// Model is the bubbletea state for the live view: a phase portrait on the
// left, energy trace and tunable parameters on the right.
type Model struct {
	sys       ode.System
	solver    ode.Integrator
	ctrl      ode.Controller
	modelName string

	state ode.State
	u     ode.Control
	t, dt float64

	running       bool
	initialState  ode.State
	stateHistory  [][]float64
	energyHistory []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

func NewModel(sys ode.System, solver ode.Integrator, ctrl ode.Controller, initState []float64, dt float64, modelName string) Model {
	params := make(map[string]float64)
	initialParams := make(map[string]float64)
	if tunable, ok := sys.(ode.Configurable); ok {
		for k, v := range tunable.GetParams() {
			params[k] = v
			initialParams[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	x0 := make(ode.State, len(initState))
	copy(x0, initState)

	return Model{
		sys:           sys,
		solver:        solver,
		ctrl:          ctrl,
		modelName:     modelName,
		state:         x0.Clone(),
		u:             make(ode.Control, sys.ControlDim()),
		dt:            dt,
		running:       true,
		initialState:  x0,
		stateHistory:  make([][]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
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
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerTick; i++ {
				m.step()
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.u = m.ctrl.Compute(m.state, m.t)

	if checked, ok := m.solver.(ode.CheckedIntegrator); ok {
		next, err := checked.StepChecked(m.sys, m.state, m.u, m.t, m.dt)
		if err != nil {
			m.running = false
			return
		}
		m.state = next
	} else {
		m.state = m.solver.Step(m.sys, m.state, m.u, m.t, m.dt)
	}
	m.t += m.dt

	if !m.state.IsValid() {
		m.running = false
		return
	}

	snap := make([]float64, len(m.state))
	copy(snap, m.state)
	m.stateHistory = append(m.stateHistory, snap)
	if len(m.stateHistory) > historyCapacity {
		m.stateHistory = m.stateHistory[1:]
	}

	if h, ok := m.sys.(ode.Hamiltonian); ok {
		m.energyHistory = append(m.energyHistory, h.Energy(m.state))
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState.Clone()
	m.u = make(ode.Control, m.sys.ControlDim())
	m.stateHistory = m.stateHistory[:0]
	m.energyHistory = m.energyHistory[:0]
	if r, ok := m.solver.(ode.Resettable); ok {
		r.Reset()
	}
	if tunable, ok := m.sys.(ode.Configurable); ok {
		for k, v := range m.initialParams {
			m.params[k] = v
			tunable.SetParam(k, v)
		}
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	m.params[key] = val
	if tunable, ok := m.sys.(ode.Configurable); ok {
		tunable.SetParam(key, val)
	}
}

// phaseIndices picks which two state components to plot: angle against its
// rate, which for every model here means x[0] against x[dim/2].
func (m Model) phaseIndices() (int, int) {
	return 0, len(m.state) / 2
}

func (m Model) View() string {
	xi, yi := m.phaseIndices()
	phase := PhasePlot(m.stateHistory, xi, yi, canvasWidth, canvasHeight)
	if phase == "" {
		phase = NewCanvas(canvasWidth, canvasHeight).String()
	}
	canvasView := canvasStyle.Render(phase)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("Energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	if len(m.energyHistory) > 0 {
		energy := m.energyHistory[len(m.energyHistory)-1]
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", energy)) + "\n")
	}
	labels := StateLabels(m.modelName, len(m.state))
	for i, v := range m.state {
		s.WriteString(labelStyle.Render(labels[i]) + valueStyle.Render(fmt.Sprintf("%.4f", v)) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-8s %.3f", k, m.params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}
