package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

type plannerStub struct {
	plan    *wizard.PlanResponse
	planErr error

	doc     []byte
	docType string
	docErr  error

	lastPayload *wizard.PlanRequest
	lastKind    string

	started chan struct{}
	release chan struct{}
}

func (p *plannerStub) GeneratePlan(ctx context.Context, payload *wizard.PlanRequest) (*wizard.PlanResponse, error) {
	p.lastPayload = payload
	if p.started != nil {
		close(p.started)
	}
	if p.release != nil {
		<-p.release
	}
	return p.plan, p.planErr
}

func (p *plannerStub) RenderDocument(ctx context.Context, kind string, payload *wizard.PlanRequest) ([]byte, string, error) {
	p.lastKind = kind
	p.lastPayload = payload
	return p.doc, p.docType, p.docErr
}

func okPlan() *wizard.PlanResponse {
	return &wizard.PlanResponse{
		OK: true,
		Plan: [][][]int{
			{{1, 2}, {0, 0}, {1, 2}},
		},
		Days:       1,
		DailyHours: 3,
	}
}

// readySession seeds a registry with one session whose step-1 form has been
// collected, so a payload can be assembled.
func readySession(t *testing.T, id string) *SessionRegistry {
	t.Helper()
	sess := newSession(id)
	errs := wizard.CollectStep1(sess.store, wizard.Step1Form{
		Days:                 "5",
		MorningHours:         "4",
		AfternoonHours:       "2",
		NumProfessors:        "3",
		NumClasses:           "2",
		FreeAfternoonEnabled: true,
		FreeAfternoonDay:     "3",
	})
	require.Empty(t, errs)

	registry := NewSessionRegistry()
	registry.put(sess)
	return registry
}

func newTestPlanService(registry *SessionRegistry, planner *plannerStub) (*PlanService, *snapshotStoreStub) {
	store := newSnapshotStoreStub()
	svc := NewPlanService(registry, planner, store, nil)
	svc.mint = func() int { return 777 }
	return svc, store
}

func TestPlanServiceGenerate(t *testing.T) {
	registry := readySession(t, "sess-1")
	planner := &plannerStub{plan: okPlan()}
	svc, store := newTestPlanService(registry, planner)

	view, err := svc.Generate(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.Equal(t, 777, view.Seed)
	assert.True(t, view.Result.OK)
	require.NotNil(t, view.Holes)

	require.NotNil(t, planner.lastPayload)
	assert.Equal(t, 5, planner.lastPayload.Days)
	assert.Equal(t, 6, planner.lastPayload.DailyHours)
	require.NotNil(t, planner.lastPayload.Seed)
	assert.Equal(t, 777, *planner.lastPayload.Seed)

	// The snapshot is written before the planner call, so it survives a crash.
	_, ok := store.saved["sess-1"]
	assert.True(t, ok)

	sess, _ := registry.get("sess-1")
	assert.False(t, sess.generating)
	assert.NotNil(t, sess.lastPlan)
}

func TestPlanServiceGenerateReusesLockedSeed(t *testing.T) {
	registry := readySession(t, "sess-1")
	sess, _ := registry.get("sess-1")
	pinned := 42
	sess.store.SetSeedLock(true, &pinned, func() int { return 0 })

	planner := &plannerStub{plan: okPlan()}
	svc, _ := newTestPlanService(registry, planner)

	view, err := svc.Generate(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 42, view.Seed)
}

func TestPlanServiceGenerateUnknownSession(t *testing.T) {
	svc, _ := newTestPlanService(NewSessionRegistry(), &plannerStub{})

	_, err := svc.Generate(context.Background(), "ghost")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrSessionNotFound.Code, appErr.Code)
}

func TestPlanServiceGenerateIncompletePayload(t *testing.T) {
	registry := NewSessionRegistry()
	registry.put(newSession("empty"))
	svc, _ := newTestPlanService(registry, &plannerStub{})

	_, err := svc.Generate(context.Background(), "empty")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPayloadIncomplete.Code, appErr.Code)
}

func TestPlanServiceGenerateSingleFlight(t *testing.T) {
	registry := readySession(t, "sess-1")
	planner := &plannerStub{
		plan:    okPlan(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, _ := newTestPlanService(registry, planner)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), "sess-1")
		done <- err
	}()

	select {
	case <-planner.started:
	case <-time.After(time.Second):
		t.Fatal("planner call never started")
	}

	_, err := svc.Generate(context.Background(), "sess-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrGenerationRunning.Code, appErr.Code)

	close(planner.release)
	require.NoError(t, <-done)

	// Once the run finishes the session accepts a new generation.
	planner.started = nil
	planner.release = nil
	_, err = svc.Generate(context.Background(), "sess-1")
	assert.NoError(t, err)
}

func TestPlanServiceGeneratePlannerFailure(t *testing.T) {
	registry := readySession(t, "sess-1")
	planner := &plannerStub{planErr: appErrors.Clone(appErrors.ErrPlannerFailed, "no feasible timetable")}
	svc, _ := newTestPlanService(registry, planner)

	_, err := svc.Generate(context.Background(), "sess-1")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlannerFailed.Code, appErr.Code)

	sess, _ := registry.get("sess-1")
	assert.False(t, sess.generating)
	assert.Nil(t, sess.lastPlan)
}

func TestPlanServiceProgress(t *testing.T) {
	registry := readySession(t, "sess-1")
	planner := &plannerStub{plan: okPlan()}
	svc, _ := newTestPlanService(registry, planner)
	ctx := context.Background()

	// Nothing has run yet.
	view, err := svc.Progress(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, view.Running)
	assert.Equal(t, 0, view.Percent)

	_, err = svc.Generate(ctx, "sess-1")
	require.NoError(t, err)

	view, err = svc.Progress(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, view.Running)
	assert.Equal(t, 100, view.Percent)
}

func TestPlanServiceDocumentRequiresPlan(t *testing.T) {
	registry := readySession(t, "sess-1")
	svc, _ := newTestPlanService(registry, &plannerStub{})

	_, _, err := svc.Document(context.Background(), "sess-1", DocumentClassesPDF)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlanNotGenerated.Code, appErr.Code)
}

func TestPlanServiceDocument(t *testing.T) {
	registry := readySession(t, "sess-1")
	planner := &plannerStub{
		plan:    okPlan(),
		doc:     []byte("%PDF-1.4"),
		docType: "application/pdf",
	}
	svc, _ := newTestPlanService(registry, planner)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "sess-1")
	require.NoError(t, err)

	body, contentType, err := svc.Document(ctx, "sess-1", DocumentProfessorsPDF)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), body)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, DocumentProfessorsPDF, planner.lastKind)

	// The render request carries the generated plan back to the service.
	require.NotNil(t, planner.lastPayload)
	assert.Equal(t, okPlan().Plan, planner.lastPayload.Plan)
}

func TestPlanServiceLastPlan(t *testing.T) {
	registry := readySession(t, "sess-1")
	planner := &plannerStub{plan: okPlan()}
	svc, _ := newTestPlanService(registry, planner)
	ctx := context.Background()

	_, err := svc.LastPlan(ctx, "sess-1")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlanNotGenerated.Code, appErr.Code)

	_, err = svc.Generate(ctx, "sess-1")
	require.NoError(t, err)

	view, err := svc.LastPlan(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 777, view.Seed)
	assert.True(t, view.Result.OK)
	require.NotNil(t, view.Holes)
}
