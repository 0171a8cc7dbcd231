// Package host runs the display inside a bubbletea program: it turns
// frame ticks into scheduler, surface and orchestrator steps, and key,
// mouse and window events into skip, quit and resize requests.
package host

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/overlay"
	"github.com/san-kum/nocturne/internal/stage"
)

const DefaultFPS = 60

type TickMsg time.Time

// SkipMsg asks for a skip from outside the program's goroutine.
type SkipMsg struct{}

var (
	skipKeys = map[string]bool{"n": true, " ": true, "space": true, "right": true, "enter": true}
	quitKeys = map[string]bool{"q": true, "esc": true, "ctrl+c": true}
)

type Model struct {
	orch    *stage.Orchestrator
	loop    *stage.Loop
	pool    *display.Pool
	overlay *overlay.Overlay
	log     zerolog.Logger

	interval   time.Duration
	last       time.Time
	started    bool
	fullscreen bool
	quitting   bool
}

type Option func(*Model)

func WithFPS(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithFullscreen marks the program as already on the alternate screen, so
// the first interaction does not request it again.
func WithFullscreen(on bool) Option {
	return func(m *Model) { m.fullscreen = on }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// NewModel wires a host around an orchestrator that has not been started.
// ov may be nil.
func NewModel(orch *stage.Orchestrator, loop *stage.Loop, pool *display.Pool, ov *overlay.Overlay, opts ...Option) Model {
	m := Model{
		orch:     orch,
		loop:     loop,
		pool:     pool,
		overlay:  ov,
		log:      zerolog.Nop(),
		interval: time.Second / DefaultFPS,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and drives one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if quitKeys[key] {
			return m.quit()
		}
		cmd := m.interact()
		if skipKeys[key] {
			m.orch.Skip()
		}
		return m, cmd
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			cmd := m.interact()
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.pool.SetViewport(display.Viewport{Cols: msg.Width, Rows: msg.Height})
		m.orch.RequestResize(msg.Width, msg.Height)
	case SkipMsg:
		m.orch.Skip()
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// frame runs the per-frame order: deferred callbacks, due timers, surface
// transitions, then the orchestrator.
func (m *Model) frame(now time.Time) {
	if !m.started {
		m.loop.Advance(now)
		if err := m.orch.Start(now); err != nil {
			m.log.Error().Err(err).Msg("start failed")
		}
		m.started = true
		m.last = now
		return
	}
	raw := now.Sub(m.last)
	if raw < 0 {
		raw = 0
	}
	m.last = now

	m.loop.Flush()
	m.loop.Advance(now)
	m.pool.Step(raw)
	m.orch.Tick(now)
}

// interact requests the alternate screen on the first key or mouse press.
// Failure is not retried.
func (m *Model) interact() tea.Cmd {
	if m.fullscreen {
		return nil
	}
	m.fullscreen = true
	m.log.Debug().Msg("entering fullscreen")
	return tea.EnterAltScreen
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.orch.Stop()
	return m, tea.Quit
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	c := m.pool.Compose()
	if m.overlay != nil {
		m.overlay.Draw(c)
	}
	return strings.Join(display.Render(c), "\n")
}

func (m Model) Started() bool             { return m.started }
func (m Model) FullscreenRequested() bool { return m.fullscreen }
func (m Model) Quitting() bool            { return m.quitting }

// Relay forwards skip requests from other goroutines into a running
// program's message queue. Requests before Attach are dropped.
type Relay struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *Relay) Skip() {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(SkipMsg{})
	}
}

// NewProgram builds the terminal program for m with mouse reporting on.
func NewProgram(m Model) *tea.Program {
	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if m.fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tea.NewProgram(m, opts...)
}
