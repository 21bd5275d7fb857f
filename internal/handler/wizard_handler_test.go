package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orariofacile/planner-wizard-api/internal/dto"
	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

type fakeWizardSrv struct {
	view dto.SessionView
	err  error

	lastID       string
	lastOpen     dto.OpenSessionRequest
	lastStep1    dto.Step1Request
	lastNavigate dto.NavigateRequest
	lastReset    dto.ResetRequest
}

func (f *fakeWizardSrv) Open(_ context.Context, req dto.OpenSessionRequest) (dto.SessionView, error) {
	f.lastOpen = req
	return f.view, f.err
}

func (f *fakeWizardSrv) Get(_ context.Context, id string) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) Close(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeWizardSrv) SubmitStep1(_ context.Context, id string, req dto.Step1Request) (dto.SessionView, error) {
	f.lastID = id
	f.lastStep1 = req
	return f.view, f.err
}

func (f *fakeWizardSrv) Navigate(_ context.Context, id string, req dto.NavigateRequest) (dto.NavigateResponse, error) {
	f.lastID = id
	f.lastNavigate = req
	return dto.NavigateResponse{Session: f.view}, f.err
}

func (f *fakeWizardSrv) EditHoursCell(_ context.Context, id string, req dto.HoursEditRequest) (dto.HoursEditResponse, error) {
	f.lastID = id
	return dto.HoursEditResponse{Professor: req.Professor, Class: req.Class, RowTotal: 4}, f.err
}

func (f *fakeWizardSrv) EditAvailabilityCell(_ context.Context, id string, req dto.AvailabilityEditRequest) (dto.AvailabilityEditResponse, error) {
	f.lastID = id
	return dto.AvailabilityEditResponse{Professor: req.Professor, Percent: 90}, f.err
}

func (f *fakeWizardSrv) HoursGrid(_ context.Context, id string) (wizard.HoursGrid, error) {
	f.lastID = id
	return wizard.HoursGrid{}, f.err
}

func (f *fakeWizardSrv) AvailabilityGrid(_ context.Context, id string) (wizard.AvailabilityGrid, error) {
	f.lastID = id
	return wizard.AvailabilityGrid{}, f.err
}

func (f *fakeWizardSrv) Summary(_ context.Context, id string) (wizard.Summary, error) {
	f.lastID = id
	return wizard.Summary{}, f.err
}

func (f *fakeWizardSrv) ShareLink(_ context.Context, id string) (dto.ShareLinkView, error) {
	f.lastID = id
	return dto.ShareLinkView{Fragment: "abc", URL: "http://share.test/#state=abc"}, f.err
}

func (f *fakeWizardSrv) ExportSnapshot(_ context.Context, id string) (wizard.PersistedSnapshot, error) {
	f.lastID = id
	return wizard.PersistedSnapshot{CurrentStep: 2, Days: 5}, f.err
}

func (f *fakeWizardSrv) ImportSnapshot(_ context.Context, id string, _ wizard.PersistedSnapshot) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) ExportStep1Document(_ context.Context, id string) (wizard.Step1Document, error) {
	f.lastID = id
	return wizard.Step1Document{}, f.err
}

func (f *fakeWizardSrv) ImportStep1Document(_ context.Context, id string, _ wizard.Step1Document) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) ExportHoursDocument(_ context.Context, id string) (wizard.HoursDocument, error) {
	f.lastID = id
	return wizard.HoursDocument{}, f.err
}

func (f *fakeWizardSrv) ImportHoursDocument(_ context.Context, id string, _ wizard.HoursDocument) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) ExportAvailabilityDocument(_ context.Context, id string) (wizard.AvailabilityDocument, error) {
	f.lastID = id
	return wizard.AvailabilityDocument{}, f.err
}

func (f *fakeWizardSrv) ImportAvailabilityDocument(_ context.Context, id string, _ wizard.AvailabilityDocument) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) SetSeed(_ context.Context, id string, _ dto.SeedRequest) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) SetMethod(_ context.Context, id string, _ dto.MethodRequest) (dto.SessionView, error) {
	f.lastID = id
	return f.view, f.err
}

func (f *fakeWizardSrv) Reset(_ context.Context, id string, req dto.ResetRequest) (dto.SessionView, error) {
	f.lastID = id
	f.lastReset = req
	return f.view, f.err
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionContext(rec *httptest.ResponseRecorder, req *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}
	return c
}

func TestWizardHandlerOpenBare(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{view: dto.SessionView{ID: "sess-1", Step: 1}}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/sessions", nil)

	handler.Open(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "sess-1", envelope.Data["id"])
}

func TestWizardHandlerOpenQueryFragmentWins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/sessions?state=from-query", dto.OpenSessionRequest{Fragment: "from-body"})

	handler.Open(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "from-query", service.lastOpen.Fragment)
}

func TestWizardHandlerOpenRejectsMalformedID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/sessions", dto.OpenSessionRequest{ID: "not-a-uuid"})

	handler.Open(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardHandlerOpenMapsDecodeError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{err: appErrors.ErrDecode})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/sessions?state=garbage", nil)

	handler.Open(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, appErrors.ErrDecode.Code, envelope.Error["code"])
}

func TestWizardHandlerGetUnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{err: appErrors.ErrSessionNotFound})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1", nil))

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWizardHandlerCloseNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodDelete, "/sessions/sess-1", nil))

	handler.Close(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sess-1", service.lastID)
}

func TestWizardHandlerSubmitStep1(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{view: dto.SessionView{ID: "sess-1"}}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPut, "/sessions/sess-1/step1", dto.Step1Request{Days: "5"}))

	handler.SubmitStep1(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", service.lastID)
	assert.Equal(t, "5", service.lastStep1.Days)
}

func TestWizardHandlerSubmitStep1FieldErrorsInEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{
		err: appErrors.WithFields(appErrors.ErrValidation, map[string]string{"days": "must be a positive number"}),
	})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPut, "/sessions/sess-1/step1", dto.Step1Request{Days: "zero"}))

	handler.SubmitStep1(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	fields, ok := envelope.Error["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "must be a positive number", fields["days"])
}

func TestWizardHandlerNavigateRejectsBadDirection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPost, "/sessions/sess-1/navigate", dto.NavigateRequest{Direction: "sideways"}))

	handler.Navigate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardHandlerNavigate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPost, "/sessions/sess-1/navigate", dto.NavigateRequest{Direction: "next"}))

	handler.Navigate(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "next", service.lastNavigate.Direction)
}

func TestWizardHandlerEditHours(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPatch, "/sessions/sess-1/hours", dto.HoursEditRequest{Professor: 1, Class: 0, Value: "4"}))

	handler.EditHours(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(4), envelope.Data["rowTotal"])
}

func TestWizardHandlerEditHoursGridNotBuilt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{err: appErrors.ErrGridNotBuilt})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPatch, "/sessions/sess-1/hours", dto.HoursEditRequest{Value: "4"}))

	handler.EditHours(c)

	assert.Equal(t, appErrors.ErrGridNotBuilt.Status, rec.Code)
}

func TestWizardHandlerEditAvailabilityRequiresValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPatch, "/sessions/sess-1/availability", map[string]any{
		"professor": 0,
		"day":       1,
		"part":      0,
	}))

	handler.EditAvailability(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardHandlerEditAvailability(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{}
	handler := NewWizardHandler(service)

	value := false
	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPatch, "/sessions/sess-1/availability", dto.AvailabilityEditRequest{Day: 2, Part: 1, Value: &value}))

	handler.EditAvailability(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(90), envelope.Data["percent"])
}

func TestWizardHandlerShareLink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1/share-link", nil))

	handler.ShareLink(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "http://share.test/#state=abc", envelope.Data["url"])
}

func TestWizardHandlerSnapshotRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{view: dto.SessionView{ID: "sess-1", Step: 2}}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, httptest.NewRequest(http.MethodGet, "/sessions/sess-1/snapshot", nil))
	handler.ExportSnapshot(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(5), envelope.Data["days"])

	rec = httptest.NewRecorder()
	c = sessionContext(rec, jsonRequest(http.MethodPut, "/sessions/sess-1/snapshot", wizard.PersistedSnapshot{CurrentStep: 2, Days: 5}))
	handler.ImportSnapshot(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWizardHandlerImportHoursDocumentMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{err: appErrors.ErrSchemaMismatch})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPut, "/sessions/sess-1/documents/hours", wizard.HoursDocument{
		NumProfessors: 9,
		NumClasses:    9,
		HoursMatrix:   wizard.HoursMatrix{{1}},
	}))

	handler.ImportHoursDocument(c)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWizardHandlerSetSeedRejectsNegative(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{})

	seed := -5
	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPatch, "/sessions/sess-1/seed", dto.SeedRequest{Enabled: true, Seed: &seed}))

	handler.SetSeed(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardHandlerSetMethodRejectsUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewWizardHandler(&fakeWizardSrv{})

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPatch, "/sessions/sess-1/method", dto.MethodRequest{Method: "genetic"}))

	handler.SetMethod(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardHandlerReset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeWizardSrv{}
	handler := NewWizardHandler(service)

	rec := httptest.NewRecorder()
	c := sessionContext(rec, jsonRequest(http.MethodPost, "/sessions/sess-1/reset", dto.ResetRequest{Step: 2}))

	handler.Reset(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, service.lastReset.Step)

	rec = httptest.NewRecorder()
	c = sessionContext(rec, jsonRequest(http.MethodPost, "/sessions/sess-1/reset", dto.ResetRequest{Step: 9}))
	handler.Reset(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}
