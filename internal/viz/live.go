package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pagefx/internal/metrics"
	"github.com/san-kum/pagefx/internal/particle"
)

const (
	panelWidth      = 40
	historyCapacity = 600
	// canvas origin inside the terminal, from canvasStyle padding
	originX, originY = 2, 1
	minCols, minRows = 10, 4
)

type TickMsg time.Time

// Live runs a particle field in the terminal. Terminal resizes drive
// Field.Resize and mouse motion over the canvas drives the interaction
// particle.
type Live struct {
	field   *particle.Field
	surface *TermSurface
	trace   *metrics.Trace
	counts  []float64
	profile string
	theme   Theme
	fps     int

	cols, rows int
	running    bool
	frozen     bool
	showHelp   bool
}

func NewLive(f *particle.Field, s *TermSurface, profile string, theme Theme, fps int) *Live {
	if fps <= 0 {
		fps = 60
	}
	l := &Live{
		field:   f,
		surface: s,
		trace:   metrics.NewTrace(historyCapacity),
		counts:  make([]float64, 0, historyCapacity),
		profile: profile,
		fps:     fps,
		cols:    s.Canvas.Width,
		rows:    s.Canvas.Height,
		running: true,
	}
	l.setTheme(theme)
	return l
}

func (l *Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(l.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l *Live) Init() tea.Cmd { return l.tick() }

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			return l, l.regenerate()
		case "t":
			l.setTheme(NextTheme(l.theme))
		case "?":
			l.showHelp = !l.showHelp
		}
	case tea.WindowSizeMsg:
		cols := msg.Width - panelWidth - 2*originX - 2
		rows := msg.Height - 2*originY
		l.resize(max(cols, minCols), max(rows, minRows))
		return l, l.resume()
	case tea.MouseMsg:
		l.pointer(msg.X-originX, msg.Y-originY)
	case tea.BlurMsg:
		l.field.Network().PointerLeave()
	case TickMsg:
		if l.frozen {
			return l, nil
		}
		if l.running {
			l.step()
		}
		if l.frozen {
			return l, nil
		}
		return l, l.tick()
	}
	return l, nil
}

func (l *Live) step() {
	net := l.field.Network()
	more := net.Step()
	l.trace.OnFrame(net.Frame(), net)
	l.counts = append(l.counts, float64(net.Len()))
	if len(l.counts) > historyCapacity {
		l.counts = l.counts[1:]
	}
	if !more {
		l.frozen = true
	}
}

func (l *Live) resize(cols, rows int) {
	l.cols, l.rows = cols, rows
	w, h := l.surface.Cells(cols, rows)
	l.field.Resize(w, h)
	l.trace.Reset()
}

// regenerate rebuilds the particle set at the current size.
func (l *Live) regenerate() tea.Cmd {
	l.resize(l.cols, l.rows)
	return l.resume()
}

// resume restarts the tick chain if a freeze had ended it.
func (l *Live) resume() tea.Cmd {
	if !l.frozen {
		return nil
	}
	l.frozen = false
	return l.tick()
}

// pointer maps a cell relative to the canvas origin into surface pixels.
// Anything outside the canvas counts as leaving it.
func (l *Live) pointer(col, row int) {
	net := l.field.Network()
	if col < 0 || row < 0 || col >= l.cols || row >= l.rows {
		net.PointerLeave()
		return
	}
	s := l.surface.Scale
	net.PointerMove((float64(col*2)+1)*s, (float64(row*4)+2)*s)
}

func (l *Live) setTheme(t Theme) {
	l.theme = t
	opts := l.field.Network().Options()
	l.surface.Palette = t.Palette(opts.LineColor, opts.ParticleColors)
}

func (l *Live) status() string {
	switch {
	case l.frozen:
		return statusStyle(l.theme.Accent).Render("FROZEN")
	case !l.running:
		return statusStyle(l.theme.Warning).Render("PAUSED")
	}
	return statusStyle(l.theme.Success).Render("RUNNING")
}

func (l *Live) View() string {
	net := l.field.Network()
	canvasView := canvasStyle.Render(l.surface.Canvas.Render(l.theme.Muted))

	header := lipgloss.NewStyle().Foreground(l.theme.Primary).Bold(true).MarginBottom(1)
	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(l.profile)) + "\n")
	s.WriteString(l.status() + "\n\n")

	links := l.trace.Links()
	if len(links) > 1 {
		chart := asciigraph.Plot(links, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("links"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	w, h := l.field.Size()
	pointer := "off"
	if p := net.Pointer(); p != nil {
		pointer = fmt.Sprintf("%.0f,%.0f", p.X, p.Y)
	}
	fill := 1.0
	if net.Target() > 0 {
		fill = float64(net.Len()) / float64(net.Target())
	}
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", net.Frame())) + "\n")
	s.WriteString(labelStyle.Render("Surface") + valueStyle.Render(fmt.Sprintf("%dx%d", w, h)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d/%d", net.Len(), net.Target())) + "\n")
	s.WriteString(labelStyle.Render("") + FillBar(fill, 16, l.theme.Secondary) + "\n")
	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", len(net.Links()))) + "\n")
	s.WriteString(labelStyle.Render("Pointer") + valueStyle.Render(pointer) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(l.theme.Name) + "\n")
	s.WriteString(labelStyle.Render("Count") + Sparkline(l.counts, 16, l.theme.Accent) + "\n")

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Regen Q:Quit\nT:Theme  ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if l.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Regenerate particles     ║
║  T        - Cycle themes             ║
║  Mouse    - Drag the pointer node    ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive takes over the terminal until the user quits.
func RunLive(l *Live) error {
	p := tea.NewProgram(l, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
