package admin

import (
	"context"
	"errors"
	"sync"
	"time"
)

type Phase string

const (
	PhaseClosed             Phase = "closed"
	PhaseAwaitingCredential Phase = "awaiting-credential"
	PhaseAuthenticated      Phase = "authenticated"
)

// ShakeDuration is how long the mismatch feedback stays on.
const ShakeDuration = 500 * time.Millisecond

var ErrGateClosed = errors.New("admin panel is not open")

// Verifier checks a credential attempt.
type Verifier interface {
	Verify(ctx context.Context, input string) error
}

// Gate is the authentication state machine of the admin panel. The typed
// credential lives only until the next attempt or close.
type Gate struct {
	verifier Verifier
	// OnAuthenticated runs after each successful login, outside the lock.
	OnAuthenticated func(ctx context.Context)

	mu         sync.Mutex
	phase      Phase
	input      string
	errText    string
	shaking    bool
	shakeTimer *time.Timer
	shakeGen   uint64
	attempt    uint64
}

func NewGate(verifier Verifier) *Gate {
	return &Gate{verifier: verifier, phase: PhaseClosed}
}

// Open moves a closed gate to awaiting-credential.
func (g *Gate) Open() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase == PhaseClosed {
		g.phase = PhaseAwaitingCredential
	}
}

// Type replaces the pending input and clears the error text.
func (g *Gate) Type(input string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhaseAwaitingCredential {
		return
	}
	g.input = input
	g.errText = ""
}

// Submit verifies the pending input. The input is cleared whatever the
// outcome. A result that arrives after Close is discarded.
func (g *Gate) Submit(ctx context.Context) error {
	g.mu.Lock()
	switch g.phase {
	case PhaseAuthenticated:
		g.mu.Unlock()
		return nil
	case PhaseClosed:
		g.mu.Unlock()
		return ErrGateClosed
	}
	input := g.input
	g.input = ""
	g.attempt++
	attempt := g.attempt
	g.mu.Unlock()

	err := g.verifier.Verify(ctx, input)

	g.mu.Lock()
	if g.attempt != attempt || g.phase != PhaseAwaitingCredential {
		g.mu.Unlock()
		return ErrGateClosed
	}
	if err != nil {
		g.errText = err.Error()
		if errors.Is(err, ErrIncorrectPassword) {
			g.shakeLocked()
		}
		g.mu.Unlock()
		return err
	}
	g.phase = PhaseAuthenticated
	g.errText = ""
	hook := g.OnAuthenticated
	g.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	return nil
}

// Close returns to closed from any phase and forgets input and error text.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.phase = PhaseClosed
	g.input = ""
	g.errText = ""
	g.attempt++
	g.stopShakeLocked()
}

func (g *Gate) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Error is the inline error text shown under the credential field.
func (g *Gate) Error() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errText
}

func (g *Gate) Shaking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shaking
}

func (g *Gate) Input() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.input
}

func (g *Gate) Authenticated() bool {
	return g.Phase() == PhaseAuthenticated
}

func (g *Gate) shakeLocked() {
	g.stopShakeLocked()
	g.shaking = true
	gen := g.shakeGen
	g.shakeTimer = time.AfterFunc(ShakeDuration, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.shakeGen == gen {
			g.shaking = false
		}
	})
}

func (g *Gate) stopShakeLocked() {
	if g.shakeTimer != nil {
		g.shakeTimer.Stop()
		g.shakeTimer = nil
	}
	g.shakeGen++
	g.shaking = false
}
