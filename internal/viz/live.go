package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/config"
	"github.com/zackradisic/toilet-paper-twitter/internal/metrics"
	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

const (
	canvasWidth     = 80
	canvasHeight    = 30
	historyCapacity = 600
	frameRate       = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model is the interactive terminal view: a fixed-step cloth driver
// fed at 60 fps, a braille canvas, and a stats panel.
type Model struct {
	cfg      *config.Config
	phys     *cloth.Physics
	canvas   *Canvas
	frame    *Wireframe
	camera   *Camera
	residual *metrics.ConstraintResidual

	t            float64
	running      bool
	windOn       bool
	presetName   string
	residualHist []float64
	lastFrame    time.Time
}

func NewModel(cfg *config.Config, presetName string) (Model, error) {
	c, err := cfg.NewCloth()
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:          cfg,
		phys:         cloth.NewPhysics(c),
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		frame:        NewWireframe(),
		camera:       NewCamera(),
		residual:     metrics.NewConstraintResidual(),
		running:      true,
		windOn:       true,
		presetName:   presetName,
		residualHist: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "w":
			m.windOn = !m.windOn
			if m.windOn {
				m.phys.Cloth().SetWind(m.cfg.Sim.Wind.Vec3())
			} else {
				m.phys.Cloth().SetWind(vmath.Vec3{})
			}
		case "left":
			m.tug(-1.5, 0)
		case "right":
			m.tug(1.5, 0)
		case "up":
			m.tug(0, 1.5)
		case "down":
			m.tug(0, -1.5)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.running {
			m.step(time.Time(msg))
		}
		m.draw()
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step feeds the elapsed wall-clock time to the fixed-step driver.
func (m *Model) step(now time.Time) {
	dt := time.Second / frameRate
	if !m.lastFrame.IsZero() {
		if elapsed := now.Sub(m.lastFrame); elapsed > 0 && elapsed < time.Second/4 {
			dt = elapsed
		}
	}
	m.lastFrame = now

	c := m.phys.Cloth()
	m.phys.Update(dt)
	m.t += dt.Seconds()

	m.residual.Observe(c, m.t)
	m.residualHist = append(m.residualHist, m.residual.Value())
	if len(m.residualHist) > historyCapacity {
		m.residualHist = m.residualHist[1:]
	}
}

// tug drags the cloth around its center particle.
func (m *Model) tug(dx, dy float64) {
	c := m.phys.Cloth()
	c.Drag(c.Cols()/2, c.Rows()/2, dx, dy)
}

func (m *Model) reset() {
	c, err := m.cfg.NewCloth()
	if err != nil {
		return
	}
	m.phys = cloth.NewPhysics(c)
	m.residual.Reset()
	m.residualHist = m.residualHist[:0]
	m.t = 0
	m.lastFrame = time.Time{}
}

func (m *Model) draw() {
	ClothWireframe(m.phys.Cloth(), m.frame)
	m.canvas.Clear()
	Render3D(m.canvas, m.frame, m.camera)
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.presetName)) + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.residualHist) > 1 {
		chart := asciigraph.Plot(m.residualHist, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Residual"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	c := m.phys.Cloth()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.phys.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d", c.Cols(), c.Rows())) + "\n")
	s.WriteString(labelStyle.Render("Constraints") + valueStyle.Render(fmt.Sprintf("%d", c.NumConstraints())) + "\n")
	wind := "on"
	if !m.windOn {
		wind = "off"
	}
	s.WriteString(labelStyle.Render("Wind") + valueStyle.Render(wind) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit W:Wind\nArrows:Drag XYZ:Rotate +-:Zoom"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
