package services_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cavedevelopers/finance-docs/internal/services"
	"github.com/cavedevelopers/finance-docs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingGenerator lets the test control exactly when each run finishes.
// Every Generate call blocks until the test releases it via the gate keyed
// by the document number it was called with.
type blockingGenerator struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	fail  map[string]error
}

func newBlockingGenerator() *blockingGenerator {
	return &blockingGenerator{
		gates: map[string]chan struct{}{},
		fail:  map[string]error{},
	}
}

func (g *blockingGenerator) Generate(doc *types.DocumentInput) (*types.GeneratedOutput, error) {
	gate := make(chan struct{})
	g.mu.Lock()
	g.gates[doc.DocNo] = gate
	g.mu.Unlock()

	<-gate

	if err := g.fail[doc.DocNo]; err != nil {
		return nil, err
	}
	markdown := "# " + doc.DocNo
	return &types.GeneratedOutput{Markdown: &markdown}, nil
}

// gate returns the release channel for the run handling docNo, waiting for
// the call to start if necessary.
func (g *blockingGenerator) gate(t *testing.T, docNo string) chan struct{} {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		g.mu.Lock()
		gate, ok := g.gates[docNo]
		g.mu.Unlock()
		if ok {
			return gate
		}
		select {
		case <-deadline:
			t.Fatalf("generate call for %s never started", docNo)
		case <-time.After(time.Millisecond):
		}
	}
}

func waitForState(t *testing.T, s *services.RecomputeService, state services.RunState) services.PreviewSnapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		snapshot := s.Snapshot()
		if snapshot.State == state {
			return snapshot
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for state %q, have %q", state, snapshot.State)
		case <-time.After(time.Millisecond):
		}
	}
}

func previewDocument(docNo string) *types.DocumentInput {
	doc := baseDocument()
	doc.DocNo = docNo
	return doc
}

func TestRecomputeService_IdleBeforeFirstSubmit(t *testing.T) {
	s := services.NewRecomputeService(newBlockingGenerator(), nil)

	snapshot := s.Snapshot()
	assert.Equal(t, services.StateIdle, snapshot.State)
	assert.Zero(t, snapshot.Generation)
	assert.Nil(t, snapshot.Output)
}

func TestRecomputeService_PublishesSingleRun(t *testing.T) {
	generator := newBlockingGenerator()
	s := services.NewRecomputeService(generator, nil)

	generation := s.Submit(previewDocument("INV-A"))
	assert.Equal(t, uint64(1), generation)
	assert.Equal(t, services.StateRunning, s.Snapshot().State)

	close(generator.gate(t, "INV-A"))

	snapshot := waitForState(t, s, services.StatePublished)
	assert.Equal(t, generation, snapshot.Generation)
	assert.Equal(t, generation, snapshot.LatestGeneration)
	require.NotNil(t, snapshot.Output)
	assert.Equal(t, "# INV-A", *snapshot.Output.Markdown)
}

func TestRecomputeService_StaleRunNeverPublishes(t *testing.T) {
	generator := newBlockingGenerator()
	s := services.NewRecomputeService(generator, nil)

	g1 := s.Submit(previewDocument("INV-STALE"))
	g2 := s.Submit(previewDocument("INV-FRESH"))
	require.Less(t, g1, g2)

	// Newer run finishes first.
	close(generator.gate(t, "INV-FRESH"))
	snapshot := waitForState(t, s, services.StatePublished)
	assert.Equal(t, g2, snapshot.Generation)
	assert.Equal(t, "# INV-FRESH", *snapshot.Output.Markdown)

	// Older run finishing afterwards must be discarded.
	close(generator.gate(t, "INV-STALE"))
	time.Sleep(20 * time.Millisecond)

	snapshot = s.Snapshot()
	assert.Equal(t, services.StatePublished, snapshot.State)
	assert.Equal(t, g2, snapshot.Generation)
	assert.Equal(t, "# INV-FRESH", *snapshot.Output.Markdown)
}

func TestRecomputeService_FailureOfStaleRunIsDiscarded(t *testing.T) {
	generator := newBlockingGenerator()
	generator.fail["INV-BAD"] = errors.New("boom")
	s := services.NewRecomputeService(generator, nil)

	s.Submit(previewDocument("INV-BAD"))
	g2 := s.Submit(previewDocument("INV-GOOD"))

	close(generator.gate(t, "INV-GOOD"))
	waitForState(t, s, services.StatePublished)

	close(generator.gate(t, "INV-BAD"))
	time.Sleep(20 * time.Millisecond)

	snapshot := s.Snapshot()
	assert.Equal(t, services.StatePublished, snapshot.State)
	assert.Equal(t, g2, snapshot.Generation)
	assert.Empty(t, snapshot.Error)
}

func TestRecomputeService_LatestFailurePublishes(t *testing.T) {
	generator := newBlockingGenerator()
	generator.fail["INV-BAD"] = errors.New("boom")
	s := services.NewRecomputeService(generator, nil)

	generation := s.Submit(previewDocument("INV-BAD"))
	close(generator.gate(t, "INV-BAD"))

	snapshot := waitForState(t, s, services.StateFailed)
	assert.Equal(t, generation, snapshot.Generation)
	assert.Equal(t, "boom", snapshot.Error)
	assert.Nil(t, snapshot.Output)
}

func TestRecomputeService_SnapshotReportsInFlightRun(t *testing.T) {
	generator := newBlockingGenerator()
	s := services.NewRecomputeService(generator, nil)

	g1 := s.Submit(previewDocument("INV-A"))
	close(generator.gate(t, "INV-A"))
	waitForState(t, s, services.StatePublished)

	g2 := s.Submit(previewDocument("INV-B"))

	// Previous result stays visible while the new run is in flight, tagged
	// with its own generation.
	snapshot := s.Snapshot()
	assert.Equal(t, services.StateRunning, snapshot.State)
	assert.Equal(t, g1, snapshot.Generation)
	assert.Equal(t, g2, snapshot.LatestGeneration)
	require.NotNil(t, snapshot.Output)
	assert.Equal(t, "# INV-A", *snapshot.Output.Markdown)

	close(generator.gate(t, "INV-B"))
	snapshot = waitForState(t, s, services.StatePublished)
	assert.Equal(t, g2, snapshot.Generation)
}
