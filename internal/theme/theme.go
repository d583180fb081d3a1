// Package theme holds the process-wide light/dark setting and notifies
// subscribers when it changes.
package theme

import (
	"fmt"
	"strings"
	"sync"
)

type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Opposite returns the mode a toggle would switch to.
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Parse accepts "dark" or "light" in any case. Empty means Dark.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme %q (valid: dark, light)", s)
	}
}

// State is a shared theme value. Subscribers run synchronously, in
// subscription order, on the goroutine that changed the mode.
type State struct {
	mu     sync.Mutex
	mode   Mode
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(Mode)
}

func New(m Mode) *State {
	return &State{mode: m}
}

func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Set changes the mode. Subscribers are only notified on an actual change.
func (s *State) Set(m Mode) {
	s.update(func(Mode) Mode { return m })
}

// Toggle flips between light and dark and returns the new mode.
func (s *State) Toggle() Mode {
	return s.update(Mode.Opposite)
}

func (s *State) update(next func(Mode) Mode) Mode {
	s.mu.Lock()
	m := next(s.mode)
	if m == s.mode {
		s.mu.Unlock()
		return m
	}
	s.mode = m
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(m)
	}
	return m
}

// Subscribe registers fn for future changes. The returned func removes it.
func (s *State) Subscribe(fn func(Mode)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
