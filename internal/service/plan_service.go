package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/orariofacile/planner-wizard-api/internal/dto"
	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

type planGenerator interface {
	GeneratePlan(ctx context.Context, payload *wizard.PlanRequest) (*wizard.PlanResponse, error)
	RenderDocument(ctx context.Context, kind string, payload *wizard.PlanRequest) ([]byte, string, error)
}

// PlanService runs plan generation for wizard sessions: payload assembly,
// seed resolution, the single awaited planner call and the cosmetic progress
// estimate. One generation per session at a time.
type PlanService struct {
	registry  *SessionRegistry
	planner   planGenerator
	snapshots snapshotStore
	logger    *zap.Logger
	mint      func() int
}

// NewPlanService constructs the service.
func NewPlanService(registry *SessionRegistry, planner planGenerator, snapshots snapshotStore, logger *zap.Logger) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		registry:  registry,
		planner:   planner,
		snapshots: snapshots,
		logger:    logger,
		mint:      randomSeed,
	}
}

// Generate assembles the payload, resolves the seed, persists the snapshot
// and awaits the planner once. A second call while one is running gets
// GENERATION_IN_PROGRESS.
func (s *PlanService) Generate(ctx context.Context, id string) (dto.PlanView, error) {
	sess, ok := s.registry.get(id)
	if !ok {
		return dto.PlanView{}, appErrors.ErrSessionNotFound
	}

	sess.mu.Lock()
	if sess.generating {
		sess.mu.Unlock()
		return dto.PlanView{}, appErrors.ErrGenerationRunning
	}

	payload, err := wizard.AssemblePayload(sess.store)
	if err != nil {
		sess.mu.Unlock()
		return dto.PlanView{}, appErrors.Clone(appErrors.ErrPayloadIncomplete, err.Error())
	}

	seed := wizard.ResolveSeed(sess.store, s.mint)
	payload.Seed = &seed

	sess.generating = true
	sess.progress = wizard.StartProgress(wizard.EstimateWorkMs(sess.store), nil)

	// Persist before the long call so a crash mid-generation loses nothing.
	snap := wizard.Serialize(sess.store, sess.machine.Step())
	if err := s.snapshots.Save(ctx, sess.id, snap); err != nil {
		s.logger.Warn("failed to persist session snapshot",
			zap.String("session_id", sess.id), zap.Error(err))
	}
	sess.mu.Unlock()

	plan, err := s.planner.GeneratePlan(ctx, payload)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.generating = false
	if sess.progress != nil {
		sess.progress.Finish()
	}
	if err != nil {
		return dto.PlanView{}, appErrors.FromError(err)
	}

	sess.lastPayload = payload
	sess.lastPlan = plan
	sess.lastSeed = seed

	holes := wizard.AnalyzeHoles(plan)
	return dto.PlanView{Result: plan, Seed: seed, Holes: &holes}, nil
}

// Progress reports the estimate for a running generation. When nothing is
// running it reports the terminal state of the last run.
func (s *PlanService) Progress(ctx context.Context, id string) (dto.ProgressView, error) {
	sess, ok := s.registry.get(id)
	if !ok {
		return dto.ProgressView{}, appErrors.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.progress == nil {
		return dto.ProgressView{}, nil
	}
	return dto.ProgressView{
		Running:   sess.generating,
		Percent:   sess.progress.Percent(),
		Visible:   sess.progress.Visible(),
		ElapsedMs: sess.progress.Elapsed().Milliseconds(),
	}, nil
}

// Document proxies a PDF render of the last generated plan.
func (s *PlanService) Document(ctx context.Context, id, kind string) ([]byte, string, error) {
	sess, ok := s.registry.get(id)
	if !ok {
		return nil, "", appErrors.ErrSessionNotFound
	}

	sess.mu.Lock()
	if sess.lastPayload == nil || sess.lastPlan == nil {
		sess.mu.Unlock()
		return nil, "", appErrors.ErrPlanNotGenerated
	}
	payload := *sess.lastPayload
	payload.Plan = sess.lastPlan.Plan
	sess.mu.Unlock()

	return s.planner.RenderDocument(ctx, kind, &payload)
}

// LastPlan returns the most recent plan with its gap statistics.
func (s *PlanService) LastPlan(ctx context.Context, id string) (dto.PlanView, error) {
	sess, ok := s.registry.get(id)
	if !ok {
		return dto.PlanView{}, appErrors.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.lastPlan == nil {
		return dto.PlanView{}, appErrors.ErrPlanNotGenerated
	}
	holes := wizard.AnalyzeHoles(sess.lastPlan)
	return dto.PlanView{Result: sess.lastPlan, Seed: sess.lastSeed, Holes: &holes}, nil
}
