package state

import (
	"sync"
	"testing"
	"time"

	"github.com/litescript/ls-starfield/internal/starfield"
	"github.com/litescript/ls-starfield/internal/viewport"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewManager(t *testing.T) {
	m := NewManager(Config{Seed: 42})

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Seed() != 42 {
		t.Errorf("Seed = %d, want 42", m.Seed())
	}

	snap := m.Snapshot()
	if snap.Hover != nil || len(snap.Events) != 0 || snap.Discovered != 0 {
		t.Errorf("fresh snapshot = %+v, want empty", snap)
	}
}

func TestManager_Hover(t *testing.T) {
	m := NewManager(DefaultConfig())

	star := starfield.Generate(32, 0, 0)
	cell := viewport.Cell{X: 32, Y: 0}

	if !m.Hover(t0, cell, star) {
		t.Error("first hover over a star should be a discovery")
	}
	if m.Hover(t0.Add(time.Second), cell, star) {
		t.Error("second hover over the same star should not be a discovery")
	}

	empty := viewport.Cell{X: 0, Y: 0}
	if m.Hover(t0, empty, starfield.Generate(0, 0, 0)) {
		t.Error("hover over an empty cell should not be a discovery")
	}

	snap := m.Snapshot()
	if snap.Discovered != 1 {
		t.Errorf("Discovered = %d, want 1", snap.Discovered)
	}
	if snap.Hover == nil || *snap.Hover != empty {
		t.Errorf("Hover = %v, want %v", snap.Hover, empty)
	}
	if len(snap.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(snap.Events))
	}

	e := snap.Events[0]
	if e.Type != EventDiscovered || e.X != 32 || e.Y != 0 || e.Name != 2097152 {
		t.Errorf("event = %+v", e)
	}
	if !m.Discovered(cell) {
		t.Error("Discovered(cell) = false after hover")
	}

	m.ClearHover()
	if m.Snapshot().Hover != nil {
		t.Error("Hover should be nil after ClearHover")
	}
}

func TestManager_SnapshotIsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Hover(t0, viewport.Cell{X: 1, Y: 2}, starfield.Star{})

	snap := m.Snapshot()
	snap.Hover.X = 99

	if got := m.Snapshot().Hover.X; got != 1 {
		t.Errorf("mutating snapshot changed manager state: X = %d", got)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	m := NewManager(Config{MaxEvents: 3})

	for i := 0; i < 5; i++ {
		m.Returned(t0.Add(time.Duration(i)*time.Second), viewport.Cell{X: int64(i)}, "origin")
	}

	events := m.Snapshot().Events
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, e := range events {
		if want := int64(i + 2); e.X != want {
			t.Errorf("event %d X = %d, want %d", i, e.X, want)
		}
	}

	recent := m.RecentEvents(2)
	if len(recent) != 2 || recent[1].X != 4 {
		t.Errorf("RecentEvents(2) = %+v", recent)
	}
	if got := m.RecentEvents(10); len(got) != 3 {
		t.Errorf("RecentEvents(10) returned %d events, want 3", len(got))
	}
}

func TestManager_Frame(t *testing.T) {
	m := NewManager(Config{MaxFrameHist: 2})

	m.Frame(t0, viewport.State{OffsetX: 1.5}, 0)
	m.Frame(t0, viewport.State{OffsetX: 2}, 10*time.Millisecond)
	m.Frame(t0, viewport.State{OffsetX: 3}, 20*time.Millisecond)
	m.Frame(t0, viewport.State{OffsetX: 4}, 30*time.Millisecond)

	snap := m.Snapshot()
	if snap.Frames != 4 {
		t.Errorf("Frames = %d, want 4", snap.Frames)
	}
	if snap.View.OffsetX != 4 {
		t.Errorf("View = %+v, want OffsetX 4", snap.View)
	}
	if len(snap.FrameHistory) != 2 {
		t.Fatalf("FrameHistory len = %d, want 2", len(snap.FrameHistory))
	}
	if got := m.AverageFrameTime(); got != 25*time.Millisecond {
		t.Errorf("AverageFrameTime = %v, want 25ms", got)
	}
}

func TestManager_ThemeChanged(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.Frame(t0, viewport.State{OffsetX: -0.5, OffsetY: 3.2}, 0)
	m.ThemeChanged(t0, "mono")

	events := m.RecentEvents(1)
	if len(events) != 1 {
		t.Fatal("expected one event")
	}
	if e := events[0]; e.Type != EventTheme || e.X != -1 || e.Y != 3 || e.Detail != "mono" {
		t.Errorf("event = %+v", e)
	}
}

func TestManager_Concurrent(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c := viewport.Cell{X: int64(i), Y: int64(j)}
				m.Hover(t0, c, starfield.Star{Exists: true, Name: int32(j)})
				m.Frame(t0, viewport.State{}, time.Millisecond)
				_ = m.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	if got := m.Snapshot().Discovered; got != 1000 {
		t.Errorf("Discovered = %d, want 1000", got)
	}
}
