package viz

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dotsim/internal/dots"
	"github.com/san-kum/dotsim/internal/export"
	"github.com/san-kum/dotsim/internal/palette"
	"github.com/san-kum/dotsim/internal/session"
)

const (
	panelWidth      = 36
	historyCapacity = 120
)

type TickMsg time.Time

// Controller is the part of a session the view drives.
type Controller interface {
	Go() error
	Stop() error
	Paint() error
	Reset() error
	Hover(x, y float64) (bool, error)
	Unhover() error
	Snapshot() (session.Frame, error)
}

type keyMap struct {
	Toggle key.Binding
	Paint  key.Binding
	Reset  key.Binding
	Theme  key.Binding
	Save   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Paint, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Paint, k.Reset},
		{k.Theme, k.Save},
		{k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "go/stop")),
	Paint:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paint once")),
	Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save svg")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type Options struct {
	// Width, Height are the session's pixel canvas.
	Width, Height int
	FPS           int
	Theme         string
	SaveDir       string
}

// App is the Bubble Tea model of the dots view.
type App struct {
	ctl     Controller
	opts    Options
	theme   Theme
	keys    keyMap
	help    help.Model
	layout  Layout
	frame   session.Frame
	history []float64
	ticks   int
	notice  string

	spring         harmonica.Spring
	tipRow, tipVel float64
	tipKey         string
}

func NewApp(ctl Controller, opts Options) App {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	a := App{
		ctl:     ctl,
		opts:    opts,
		theme:   GetTheme(opts.Theme),
		keys:    defaultKeys,
		help:    help.New(),
		history: make([]float64, 0, historyCapacity),
		spring:  harmonica.NewSpring(harmonica.FPS(opts.FPS), 8.0, 0.6),
	}
	a.resize(80, 24)
	return a
}

func (m App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m App) Init() tea.Cmd { return m.tick() }

func (m *App) resize(w, h int) {
	m.help.Width = w
	m.layout = Fit(m.opts.Width, m.opts.Height, w-panelWidth-3, h-4)
	m.layout.Left, m.layout.Top = 1, 2
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		if px, py, ok := m.layout.ToPixel(msg.X, msg.Y); ok {
			_, err := m.ctl.Hover(px, py)
			m.note(err)
		} else {
			m.note(m.ctl.Unhover())
		}
	case TickMsg:
		f, err := m.ctl.Snapshot()
		if err != nil {
			return m, tea.Quit
		}
		m.frame = f
		m.ticks++
		m.history = append(m.history, float64(len(f.Elements)))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		m.stepTooltip()
		return m, m.tick()
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if m.frame.Status == session.StatusRunning {
			m.note(m.ctl.Stop())
		} else {
			m.note(m.ctl.Go())
		}
	case key.Matches(msg, m.keys.Paint):
		m.note(m.ctl.Paint())
	case key.Matches(msg, m.keys.Reset):
		m.note(m.ctl.Reset())
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
	case key.Matches(msg, m.keys.Save):
		path := filepath.Join(m.opts.SaveDir, fmt.Sprintf("dotsim_%d.svg", time.Now().Unix()))
		if err := export.WriteSVG(path, m.frame, false); err != nil {
			m.note(err)
		} else {
			m.notice = "saved " + path
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *App) note(err error) {
	if err != nil {
		m.notice = err.Error()
	}
}

// tooltipBox places the visible tooltip, if any, on the canvas.
func (m App) tooltipBox() (col, row int, ok bool) {
	t := m.frame.Tooltip
	if !t.Visible {
		return 0, 0, false
	}
	w, h := BoxSize(t.Lines)
	col, row = m.layout.TooltipOrigin(float64(t.Dot.X), float64(t.Dot.Y), float64(t.Dot.R), t.Placement, w, h)
	return col, row, true
}

// stepTooltip slides the tooltip toward its row; a new dot snaps it in place.
func (m *App) stepTooltip() {
	_, row, ok := m.tooltipBox()
	if !ok {
		m.tipKey = ""
		return
	}
	k := dots.Key(m.frame.Tooltip.Dot)
	if k != m.tipKey {
		m.tipKey, m.tipRow, m.tipVel = k, float64(row), 0
		return
	}
	m.tipRow, m.tipVel = m.spring.Update(m.tipRow, m.tipVel, float64(row))
}

func (m App) drawCanvas() *Canvas {
	c := NewCanvas(m.layout.Cols, m.layout.Rows, m.theme.Canvas())
	for _, e := range m.frame.Elements {
		sx, sy := m.layout.ToSub(e.CX, e.CY)
		fill := palette.Color{Hex: e.Fill}.Colorful()
		c.FillCircle(sx, sy, e.R*m.layout.Scale, fill, e.Opacity)
	}
	if col, _, ok := m.tooltipBox(); ok {
		c.PutBox(col, int(math.Round(m.tipRow)), m.frame.Tooltip.Lines)
	}
	return c
}

func (m App) View() string {
	title := GradientText("DOTSIM", m.theme.Primary, m.theme.Secondary) + "  " +
		Subtle.Render(fmt.Sprintf("%dx%d px", m.opts.Width, m.opts.Height))

	tipStyle := lipgloss.NewStyle().Foreground(m.theme.Text).Bold(true)
	canvas := CanvasFrame.Render(m.drawCanvas().Render(tipStyle))

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", m.viewPanel())
	return title + "\n" + body + "\n" + m.help.View(m.keys)
}

func (m App) viewStatus() string {
	switch m.frame.Status {
	case session.StatusRunning:
		return StatusRunning.Render("● running")
	case session.StatusStopped:
		return StatusPaused.Render("■ stopped")
	case session.StatusFailed:
		return StatusFailed.Render("✗ palette unavailable")
	default:
		return StatusPaused.Render(AnimatedSpinner(m.ticks) + " loading palette")
	}
}

func (m App) viewPanel() string {
	f := m.frame
	var b strings.Builder

	metric := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}

	b.WriteString(m.viewStatus() + "\n\n")
	metric("cycle", fmt.Sprintf("%d", f.Cycles))
	metric("on canvas", fmt.Sprintf("%d live / %d drawn", f.Live, len(f.Elements)))
	metric("last", fmt.Sprintf("+%d ~%d -%d", f.Last.Entering, f.Last.Persisting, f.Last.Exiting))
	metric("radius", fmt.Sprintf("< %d", f.RadiusCap))
	metric("transition", f.Transition.String())
	b.WriteString(ProgressBar(float64(f.RadiusCap)/dots.MaxRadius, panelWidth-6) + "\n")
	b.WriteString(Separator(panelWidth-4) + "\n")

	if len(m.history) >= 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(panelWidth-12),
			asciigraph.Precision(0),
			asciigraph.Caption("circles drawn"))
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Secondary).Render(graph) + "\n")
	}

	b.WriteString("\n" + Subtle.Render("theme "+m.theme.Name))
	if m.notice != "" {
		b.WriteString("\n" + Subtle.Render(m.notice))
	}
	return GlassPanel.Width(panelWidth).Render(b.String())
}

// newProgram turns on all-motion mouse reporting. Cell-motion mode only
// reports movement while a button is held.
func newProgram(m tea.Model, extra ...tea.ProgramOption) *tea.Program {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}, extra...)
	return tea.NewProgram(m, opts...)
}

// Run shows the view until the user quits.
func Run(ctl Controller, opts Options) error {
	_, err := newProgram(NewApp(ctl, opts)).Run()
	return err
}
