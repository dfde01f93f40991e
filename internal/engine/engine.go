package engine

import (
	"context"
	"sync"
)

// Status describes the trading engine's current state as reported to the
// dashboard.
type Status struct {
	Running  bool   `json:"running"`
	Strategy string `json:"strategy"`
}

// Engine is the contract with the external trading engine. The engine itself
// runs out of process; this service only relays control commands.
type Engine interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status(ctx context.Context) (Status, error)
	SetStrategy(ctx context.Context, name string) error
}

// Stub is an in-process Engine used until the real engine endpoint is wired.
type Stub struct {
	mu       sync.Mutex
	running  bool
	strategy string
}

// NewStub returns a stopped stub engine with the given default strategy.
func NewStub(strategy string) *Stub {
	return &Stub{strategy: strategy}
}

func (s *Stub) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	return nil
}

func (s *Stub) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return nil
}

func (s *Stub) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Running: s.running, Strategy: s.strategy}, nil
}

func (s *Stub) SetStrategy(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = name
	return nil
}
