package resolve

import (
	"context"
	"sync"

	i18n "github.com/dseza/portal/internal/platform/i18n"
)

// State is the externally observable phase of a resolution cycle.
type State int

const (
	// StatePending means no result has been published yet.
	StatePending State = iota
	// StateResolved means a record was found, possibly with a redirect.
	StateResolved
	// StateNotFound means every strategy was exhausted or a terminal
	// fetch error ended the cycle.
	StateNotFound
)

// Outcome is a cycle's published result slot.
type Outcome struct {
	State  State
	Result Result
}

// Controller owns the resolution cycles of one routed view. Starting a new
// cycle supersedes the one in flight: results are applied in cycle start
// order, so a cycle that started earlier but finishes later can never
// overwrite a newer cycle's outcome.
type Controller struct {
	resolver *Resolver

	mu      sync.Mutex
	current *Cycle
}

// Cycle is one resolution attempt triggered by a single navigation. Its
// outcome is written at most once, by the goroutine Begin started, and only
// while the cycle is still the controller's current one.
type Cycle struct {
	RawIdentifier string
	Language      i18n.Language

	cancel     context.CancelFunc
	done       chan struct{}
	superseded chan struct{}

	// outcome is published before done is closed and read only after.
	outcome Outcome
}

// NewController returns a Controller backed by the given resolver.
func NewController(resolver *Resolver) *Controller {
	return &Controller{resolver: resolver}
}

// Begin starts a fresh cycle for the identifier/language pair and
// supersedes any previous cycle. Cancellation of the superseded cycle is
// advisory; its in-flight lookups are not forcibly aborted, but the
// identity check in run discards their results regardless.
func (c *Controller) Begin(raw string, lang i18n.Language) *Cycle {
	ctx, cancel := context.WithCancel(context.Background())
	cy := &Cycle{
		RawIdentifier: raw,
		Language:      lang,
		cancel:        cancel,
		done:          make(chan struct{}),
		superseded:    make(chan struct{}),
	}

	c.mu.Lock()
	prev := c.current
	c.current = cy
	c.mu.Unlock()

	if prev != nil {
		prev.cancel()
		close(prev.superseded)
	}

	go c.run(ctx, cy)
	return cy
}

func (c *Controller) run(ctx context.Context, cy *Cycle) {
	defer cy.cancel()

	result, err := c.resolver.Resolve(ctx, cy.RawIdentifier, cy.Language)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != cy {
		// Superseded while suspended; the result slot belongs to a
		// newer cycle now.
		return
	}
	if err != nil || result.Record == nil {
		cy.outcome = Outcome{State: StateNotFound, Result: result}
	} else {
		cy.outcome = Outcome{State: StateResolved, Result: result}
	}
	close(cy.done)
}

// Current returns the latest cycle's outcome, pending when none has
// completed.
func (c *Controller) Current() Outcome {
	c.mu.Lock()
	cy := c.current
	c.mu.Unlock()
	if cy == nil {
		return Outcome{State: StatePending}
	}
	return cy.Outcome()
}

// Outcome returns the cycle's slot without blocking; pending until the
// cycle completes.
func (cy *Cycle) Outcome() Outcome {
	select {
	case <-cy.done:
		return cy.outcome
	default:
		return Outcome{State: StatePending}
	}
}

// Wait blocks until the cycle publishes an outcome, is superseded, or ctx
// ends. ok is false when this cycle will never publish.
func (cy *Cycle) Wait(ctx context.Context) (Outcome, bool) {
	select {
	case <-cy.done:
		return cy.outcome, true
	default:
	}
	select {
	case <-cy.done:
		return cy.outcome, true
	case <-cy.superseded:
		return Outcome{State: StatePending}, false
	case <-ctx.Done():
		return Outcome{State: StatePending}, false
	}
}
