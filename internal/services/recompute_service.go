package services

import (
	"sync"

	"github.com/cavedevelopers/finance-docs/internal/types"
	"go.uber.org/zap"
)

// RunState describes the lifecycle of the preview slot.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StatePublished RunState = "published"
	StateFailed    RunState = "failed"
)

// DocumentGenerator is the part of the generator the orchestrator needs.
type DocumentGenerator interface {
	Generate(doc *types.DocumentInput) (*types.GeneratedOutput, error)
}

// PreviewSnapshot is a consistent view of the preview slot. Generation
// identifies the run that produced Output/Error; LatestGeneration is the
// most recently submitted run.
type PreviewSnapshot struct {
	State            RunState               `json:"state"`
	Generation       uint64                 `json:"generation"`
	LatestGeneration uint64                 `json:"latest_generation"`
	Output           *types.GeneratedOutput `json:"output,omitempty"`
	Error            string                 `json:"error,omitempty"`
}

// RecomputeService coordinates live regeneration of a document under
// rapid successive edits. Each submission gets a monotonically increasing
// generation marker; a run whose marker is no longer the latest when it
// completes is discarded, so publication is monotonic in generation order
// even when runs finish out of order. Cancellation is observation-based:
// in-flight runs are never aborted, their results just never surface.
type RecomputeService struct {
	generator DocumentGenerator
	logger    *zap.Logger

	mu        sync.Mutex
	latest    uint64
	state     RunState
	published PreviewSnapshot
}

// NewRecomputeService creates a new recompute service
func NewRecomputeService(generator DocumentGenerator, logger *zap.Logger) *RecomputeService {
	if logger == nil {
		logger = zap.L()
	}
	return &RecomputeService{
		generator: generator,
		logger:    logger,
		state:     StateIdle,
		published: PreviewSnapshot{State: StateIdle},
	}
}

// Submit registers a new document description and starts its run
// asynchronously. Any run still in flight is superseded: its eventual
// result will not be published. Returns the generation assigned to this
// submission.
func (s *RecomputeService) Submit(doc *types.DocumentInput) uint64 {
	s.mu.Lock()
	s.latest++
	generation := s.latest
	s.state = StateRunning
	s.mu.Unlock()

	go s.run(generation, doc)
	return generation
}

func (s *RecomputeService) run(generation uint64, doc *types.DocumentInput) {
	output, err := s.generator.Generate(doc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.latest {
		// Superseded while computing; keep the current published state.
		s.logger.Debug("discarding superseded run",
			zap.Uint64("generation", generation),
			zap.Uint64("latest", s.latest))
		return
	}

	if err != nil {
		s.published = PreviewSnapshot{
			State:      StateFailed,
			Generation: generation,
			Error:      err.Error(),
		}
		s.state = StateFailed
		s.logger.Warn("preview run failed",
			zap.Uint64("generation", generation),
			zap.Error(err))
		return
	}

	s.published = PreviewSnapshot{
		State:      StatePublished,
		Generation: generation,
		Output:     output,
	}
	s.state = StatePublished
}

// Snapshot returns the current published result paired with its
// generation marker. The pairing is atomic: a reader never sees a result
// tagged with the wrong generation.
func (s *RecomputeService) Snapshot() PreviewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.published
	snapshot.LatestGeneration = s.latest
	if s.state == StateRunning {
		snapshot.State = StateRunning
	}
	return snapshot
}
