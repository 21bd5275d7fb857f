package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	"github.com/orariofacile/planner-wizard-api/pkg/config"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

func newTestPlannerClient(baseURL string) *PlannerClient {
	return NewPlannerClient(config.PlannerConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	}, nil, nil)
}

func testPayload() *wizard.PlanRequest {
	seed := 42
	return &wizard.PlanRequest{
		Days:           5,
		DailyHours:     6,
		ClassNames:     []string{"1A", "2B"},
		ProfessorNames: []string{"Bruno", "anna", "Carlo"},
		Method:         wizard.MethodMIP,
		Seed:           &seed,
	}
}

func TestPlannerClientGeneratePlan(t *testing.T) {
	var received wizard.PlanRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-plan", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(wizard.PlanResponse{
			OK:        true,
			BestScore: 12.5,
			Plan:      [][][]int{{{1, 2}}},
		})
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	plan, err := client.GeneratePlan(context.Background(), testPayload())
	require.NoError(t, err)

	assert.True(t, plan.OK)
	assert.Equal(t, 12.5, plan.BestScore)
	assert.Equal(t, 5, received.Days)
	require.NotNil(t, received.Seed)
	assert.Equal(t, 42, *received.Seed)
}

func TestPlannerClientGeneratePlanRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(wizard.PlanResponse{
			OK:      false,
			Message: "no feasible timetable for these constraints",
		})
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	_, err := client.GeneratePlan(context.Background(), testPayload())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlannerFailed.Code, appErr.Code)
	assert.Equal(t, "no feasible timetable for these constraints", appErr.Message)
}

func TestPlannerClientGeneratePlanServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok": false}`))
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	_, err := client.GeneratePlan(context.Background(), testPayload())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlannerFailed.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "500")
}

func TestPlannerClientGeneratePlanUnreadableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	_, err := client.GeneratePlan(context.Background(), testPayload())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlannerFailed.Code, appErr.Code)
}

func TestPlannerClientGeneratePlanUnreachable(t *testing.T) {
	client := newTestPlannerClient("http://127.0.0.1:1")

	_, err := client.GeneratePlan(context.Background(), testPayload())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlannerUnreachable.Code, appErr.Code)
}

func TestPlannerClientRenderDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/classes-pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	payload := testPayload()
	payload.Plan = [][][]int{{{1, 2}}}

	body, contentType, err := client.RenderDocument(context.Background(), DocumentClassesPDF, payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), body)
	assert.Equal(t, "application/pdf", contentType)
}

func TestPlannerClientRenderDocumentDefaultsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress the sniffed header so the client's fallback kicks in.
		w.Header()["Content-Type"] = nil
		w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	_, contentType, err := client.RenderDocument(context.Background(), DocumentProfessorsPDF, testPayload())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
}

func TestPlannerClientRenderDocumentUnknownKind(t *testing.T) {
	client := newTestPlannerClient("http://planner.test")

	_, _, err := client.RenderDocument(context.Background(), "classes-docx", testPayload())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestPlannerClientRenderDocumentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestPlannerClient(server.URL)
	_, _, err := client.RenderDocument(context.Background(), DocumentClassesPDF, testPayload())

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrPlannerFailed.Code, appErr.Code)
}
