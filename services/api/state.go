package api

import "sync/atomic"

// State tracks whether the process is able to serve traffic. A new State is
// not good until SetGood is called.
type State struct {
	good         atomic.Bool
	shuttingDown atomic.Bool
}

// NewState returns a State that is neither good nor shutting down.
func NewState() *State {
	return &State{}
}

// SetGood marks the process able to serve.
func (s *State) SetGood() { s.good.Store(true) }

// SetBad marks the process unable to serve.
func (s *State) SetBad() { s.good.Store(false) }

// ShuttingDown flags the process as draining. It cannot be undone.
func (s *State) ShuttingDown() { s.shuttingDown.Store(true) }

// Healthy reports good and not shutting down.
func (s *State) Healthy() bool {
	return s.good.Load() && !s.shuttingDown.Load()
}
