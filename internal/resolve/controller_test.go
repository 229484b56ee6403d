package resolve

import (
	"context"
	"sync"
	"testing"
	"time"

	content "github.com/dseza/portal/internal/content"
	i18n "github.com/dseza/portal/internal/platform/i18n"
)

// gatedGateway blocks FetchByKey on a per-key gate so tests can hold a
// cycle in its suspension point.
type gatedGateway struct {
	mu      sync.Mutex
	records map[string]content.Record
	gates   map[string]chan struct{}
}

func (g *gatedGateway) gate(key string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gates == nil {
		g.gates = map[string]chan struct{}{}
	}
	if _, ok := g.gates[key]; !ok {
		g.gates[key] = make(chan struct{})
	}
	return g.gates[key]
}

func (g *gatedGateway) FetchByKey(ctx context.Context, key string, lang i18n.Language) (content.Record, error) {
	g.mu.Lock()
	gate := g.gates[key]
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return content.Record{}, ctx.Err()
		}
	}
	g.mu.Lock()
	rec, ok := g.records[key]
	g.mu.Unlock()
	if !ok {
		return content.Record{}, content.ErrNotFound
	}
	rec.Language = lang
	return rec, nil
}

func (g *gatedGateway) FetchAllSummaries(context.Context, i18n.Language) ([]content.Summary, error) {
	return nil, nil
}

func TestControllerPendingUntilComplete(t *testing.T) {
	t.Parallel()

	gateway := &gatedGateway{records: map[string]content.Record{
		keyA: {Key: keyA, PathAlias: "/tin-abc"},
	}}
	gate := gateway.gate(keyA)
	controller := NewController(NewResolver(gateway))

	cy := controller.Begin(keyA, i18n.Vietnamese)
	if got := cy.Outcome(); got.State != StatePending {
		t.Fatalf("state before completion = %v", got.State)
	}

	close(gate)
	outcome, ok := cy.Wait(context.Background())
	if !ok {
		t.Fatal("cycle reported as never publishing")
	}
	if outcome.State != StateResolved || outcome.Result.Record.Key != keyA {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestControllerLastStartedWins(t *testing.T) {
	t.Parallel()

	gateway := &gatedGateway{records: map[string]content.Record{
		keyA: {Key: keyA, PathAlias: "/slow"},
		keyB: {Key: keyB, PathAlias: "/fast"},
	}}
	slowGate := gateway.gate(keyA)
	controller := NewController(NewResolver(gateway))

	slow := controller.Begin(keyA, i18n.Vietnamese)
	fast := controller.Begin(keyB, i18n.Vietnamese)

	if _, ok := slow.Wait(context.Background()); ok {
		t.Fatal("superseded cycle published an outcome")
	}

	outcome, ok := fast.Wait(context.Background())
	if !ok || outcome.State != StateResolved || outcome.Result.Record.Key != keyB {
		t.Fatalf("fast outcome = %+v, ok = %v", outcome, ok)
	}

	// Let the slow cycle finish its fetch; its late result must be
	// discarded, never applied.
	close(slowGate)
	time.Sleep(20 * time.Millisecond)
	if got := controller.Current(); got.State != StateResolved || got.Result.Record.Key != keyB {
		t.Fatalf("current outcome = %+v, want fast cycle's", got)
	}
	if got := slow.Outcome(); got.State != StatePending {
		t.Fatalf("slow cycle outcome = %+v, want perpetually pending", got)
	}
}

func TestControllerNotFound(t *testing.T) {
	t.Parallel()

	controller := NewController(NewResolver(&gatedGateway{}))
	cy := controller.Begin("totally-unknown-garbage-string", i18n.English)

	outcome, ok := cy.Wait(context.Background())
	if !ok {
		t.Fatal("cycle reported as never publishing")
	}
	if outcome.State != StateNotFound || outcome.Result.Record != nil {
		t.Fatalf("outcome = %+v", outcome)
	}
	if outcome.Result.Strategy != StrategyNone {
		t.Fatalf("strategy = %v", outcome.Result.Strategy)
	}
}

func TestControllerWaitHonorsCaller(t *testing.T) {
	t.Parallel()

	gateway := &gatedGateway{records: map[string]content.Record{keyA: {Key: keyA}}}
	gateway.gate(keyA) // never released
	controller := NewController(NewResolver(gateway))
	cy := controller.Begin(keyA, i18n.Vietnamese)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, ok := cy.Wait(ctx); ok {
		t.Fatal("wait returned ok after caller gave up")
	}
}
