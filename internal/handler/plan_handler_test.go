package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orariofacile/planner-wizard-api/internal/dto"
	"github.com/orariofacile/planner-wizard-api/internal/service"
	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

type fakePlanSrv struct {
	plan     dto.PlanView
	progress dto.ProgressView
	doc      []byte
	docType  string
	err      error

	lastID   string
	lastKind string
}

func (f *fakePlanSrv) Generate(_ context.Context, id string) (dto.PlanView, error) {
	f.lastID = id
	return f.plan, f.err
}

func (f *fakePlanSrv) Progress(_ context.Context, id string) (dto.ProgressView, error) {
	f.lastID = id
	return f.progress, f.err
}

func (f *fakePlanSrv) Document(_ context.Context, id, kind string) ([]byte, string, error) {
	f.lastID = id
	f.lastKind = kind
	return f.doc, f.docType, f.err
}

func (f *fakePlanSrv) LastPlan(_ context.Context, id string) (dto.PlanView, error) {
	f.lastID = id
	return f.plan, f.err
}

func TestPlanHandlerGenerate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakePlanSrv{plan: dto.PlanView{
		Result: &wizard.PlanResponse{OK: true},
		Seed:   42,
	}}
	handler := NewPlanHandler(srv)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodPost, "/sessions/sess-1/plan", nil))

	handler.Generate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", srv.lastID)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(42), envelope.Data["seed"])
}

func TestPlanHandlerGenerateAlreadyRunning(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanHandler(&fakePlanSrv{err: appErrors.ErrGenerationRunning})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodPost, "/sessions/sess-1/plan", nil))

	handler.Generate(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, appErrors.ErrGenerationRunning.Code, envelope.Error["code"])
}

func TestPlanHandlerGeneratePlannerDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanHandler(&fakePlanSrv{err: appErrors.ErrPlannerUnreachable})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodPost, "/sessions/sess-1/plan", nil))

	handler.Generate(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPlanHandlerLastPlanMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanHandler(&fakePlanSrv{err: appErrors.ErrPlanNotGenerated})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1/plan", nil))

	handler.LastPlan(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlanHandlerProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanHandler(&fakePlanSrv{progress: dto.ProgressView{
		Running:   true,
		Percent:   45,
		Visible:   true,
		ElapsedMs: 4250,
	}})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1/plan/progress", nil))

	handler.Progress(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Data["running"])
	assert.Equal(t, float64(45), envelope.Data["percent"])
}

func TestPlanHandlerClassesDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakePlanSrv{doc: []byte("%PDF-1.4"), docType: "application/pdf"}
	handler := NewPlanHandler(srv)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodPost, "/sessions/sess-1/plan/documents/classes-pdf", nil))

	handler.ClassesDocument(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
	assert.Equal(t, service.DocumentClassesPDF, srv.lastKind)
}

func TestPlanHandlerProfessorsDocumentWithoutPlan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPlanHandler(&fakePlanSrv{err: appErrors.ErrPlanNotGenerated})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodPost, "/sessions/sess-1/plan/documents/professors-pdf", nil))

	handler.ProfessorsDocument(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
