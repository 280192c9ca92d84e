// Package state provides thread-safe session state for the explorer.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/viewport"
)

// EventType represents the type of session event.
type EventType string

const (
	EventDiscovered EventType = "DISCOVERED"
	EventReturned   EventType = "RETURNED"
	EventTheme      EventType = "THEME"
)

// Event represents a notable moment in an exploration session.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	X         int64     `json:"x"`
	Y         int64     `json:"y"`
	Name      int32     `json:"name,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared session state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	seed   int64
	view   viewport.State
	hover  *viewport.Cell
	frames int

	// Frame durations in milliseconds
	frameHistory []TimeSeries
	maxFrameHist int

	// Cells whose star has been hovered at least once
	discovered map[viewport.Cell]int32

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	Seed         int64
	MaxFrameHist int
	MaxEvents    int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxFrameHist: 90, // 3 seconds at 30 fps
		MaxEvents:    50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxFrames := cfg.MaxFrameHist
	if maxFrames <= 0 {
		maxFrames = 90
	}
	return &Manager{
		seed:         cfg.Seed,
		maxFrameHist: maxFrames,
		frameHistory: make([]TimeSeries, 0, maxFrames),
		maxEvents:    maxEvents,
		events:       make([]Event, 0, maxEvents),
		discovered:   make(map[viewport.Cell]int32),
	}
}

// Seed returns the session seed.
func (m *Manager) Seed() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seed
}

// Frame records one rendered frame: the view it showed and how long the
// previous frame took.
func (m *Manager) Frame(at time.Time, view viewport.State, dt time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.view = view
	m.frames++

	if dt <= 0 {
		return
	}
	m.frameHistory = append(m.frameHistory, TimeSeries{
		Timestamp: at,
		Value:     float64(dt) / float64(time.Millisecond),
	})
	if len(m.frameHistory) > m.maxFrameHist {
		m.frameHistory = m.frameHistory[1:]
	}
}

// Hover records the cell under the pointer and the star it holds. The
// first hover over an existing star logs a discovery. It returns true
// when the hover was a new discovery.
func (m *Manager) Hover(at time.Time, c viewport.Cell, star starfield.Star) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cell := c
	m.hover = &cell

	if !star.Exists {
		return false
	}
	if _, seen := m.discovered[c]; seen {
		return false
	}
	m.discovered[c] = star.Name
	m.addEvent(Event{
		Type:      EventDiscovered,
		Timestamp: at,
		X:         c.X,
		Y:         c.Y,
		Name:      star.Name,
	})
	return true
}

// ClearHover records that the pointer left the field.
func (m *Manager) ClearHover() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hover = nil
}

// Returned logs a jump back to a home cell.
func (m *Manager) Returned(at time.Time, c viewport.Cell, preset string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addEvent(Event{Type: EventReturned, Timestamp: at, X: c.X, Y: c.Y, Detail: preset})
}

// ThemeChanged logs a theme switch.
func (m *Manager) ThemeChanged(at time.Time, theme string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	x, y := m.view.Origin()
	m.addEvent(Event{Type: EventTheme, Timestamp: at, X: x, Y: y, Detail: theme})
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of session state.
type Snapshot struct {
	Seed         int64
	View         viewport.State
	Hover        *viewport.Cell
	Frames       int
	Discovered   int
	FrameHistory []TimeSeries
	Events       []Event
}

// Snapshot returns a consistent snapshot of session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hover *viewport.Cell
	if m.hover != nil {
		c := *m.hover
		hover = &c
	}

	frames := make([]TimeSeries, len(m.frameHistory))
	copy(frames, m.frameHistory)

	return Snapshot{
		Seed:         m.seed,
		View:         m.view,
		Hover:        hover,
		Frames:       m.frames,
		Discovered:   len(m.discovered),
		FrameHistory: frames,
		Events:       m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Discovered reports whether the star at c has been hovered.
func (m *Manager) Discovered(c viewport.Cell) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.discovered[c]
	return ok
}

// AverageFrameTime returns the mean of the recorded frame durations.
func (m *Manager) AverageFrameTime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.frameHistory) == 0 {
		return 0
	}
	var sum float64
	for _, p := range m.frameHistory {
		sum += p.Value
	}
	return time.Duration(sum / float64(len(m.frameHistory)) * float64(time.Millisecond))
}
