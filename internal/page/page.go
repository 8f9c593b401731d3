// Package page stands in for the browser window the editor and login
// flows talk to.
package page

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier shows a blocking message to the operator.
type Notifier interface {
	Alert(msg string)
}

// Navigator reloads the current page or moves to another one.
type Navigator interface {
	Reload()
	Navigate(path string)
}

var (
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	navStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D9FF"))
)

// Console prints alerts and navigation to a terminal. It remembers the last
// path so a Reload can say what it reloaded.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	logger  *log.Logger
	current string
}

func NewConsole(out io.Writer, logger *log.Logger, current string) *Console {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Console{out: out, logger: logger, current: current}
}

func (c *Console) Alert(msg string) {
	fmt.Fprintln(c.out, alertStyle.Render("! "+msg))
}

func (c *Console) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.Printf("reload %s", c.current)
	fmt.Fprintln(c.out, navStyle.Render("reload "+c.current))
}

func (c *Console) Navigate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = path
	c.logger.Printf("navigate %s", path)
	fmt.Fprintln(c.out, navStyle.Render("-> "+path))
}

// Current is the last path navigated to.
func (c *Console) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Recorder keeps every alert and navigation. Safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	Alerts    []string
	Reloads   int
	Navigated []string
}

func (r *Recorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Alerts = append(r.Alerts, msg)
}

func (r *Recorder) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reloads++
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Navigated = append(r.Navigated, path)
}
