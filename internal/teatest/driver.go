// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of starting a tea.Program, the Driver calls Update directly and
// runs every returned Cmd inline, feeding the resulting messages back into
// the model until nothing is left. Cmds that block (cursor blink timers)
// are abandoned after a short timeout.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds a single message may trigger.
const MaxDrainDepth = 100

// cmdTimeout separates store-backed loaders, which return in microseconds,
// from timer Cmds that block for hundreds of milliseconds.
const cmdTimeout = 10 * time.Millisecond

// Driver owns the model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting records that a Cmd produced tea.QuitMsg. The runtime usually
	// swallows that message, so the model itself may never see it.
	Quitting bool
}

// Option configures a Driver before Init runs.
type Option func(*Driver)

// New wraps model. Call DrainInit afterwards to run its Init Cmd.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg ahead of Init.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send feeds msg to the model and drains whatever it returns. Messages sent
// after the model quit are dropped.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

func (d *Driver) sendKey(t tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: t})
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.sendKey(tea.KeyEnter)
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.sendKey(tea.KeyEsc)
}

func (d *Driver) PressBackspace() {
	d.T.Helper()
	d.sendKey(tea.KeyBackspace)
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.sendKey(tea.KeyCtrlC)
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.sendKey(tea.KeyUp)
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.sendKey(tea.KeyDown)
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(m)
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(m)
		d.drain(next, depth+1)
	}
}

// runWithTimeout returns nil when cmd has not produced a message within
// cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles/cursor.
func isBlink(msg tea.Msg) bool {
	name := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(name, "blink")
}
