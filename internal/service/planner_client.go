package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	"github.com/orariofacile/planner-wizard-api/pkg/config"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
)

// Document endpoints of the planner service.
const (
	DocumentClassesPDF    = "classes-pdf"
	DocumentProfessorsPDF = "professors-pdf"
)

// PlannerClient talks to the remote plan-generation service. Every call is a
// single awaited round trip: no retry, no streaming of partial results.
type PlannerClient struct {
	baseURL string
	http    *http.Client
	metrics *MetricsService
	logger  *zap.Logger
}

// NewPlannerClient constructs a client from the planner configuration.
func NewPlannerClient(cfg config.PlannerConfig, metrics *MetricsService, logger *zap.Logger) *PlannerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		metrics: metrics,
		logger:  logger,
	}
}

// GeneratePlan submits the assembled payload and returns the planner's reply.
// Transport failures map to PLANNER_UNREACHABLE, an ok:false reply or a
// non-2xx status to PLANNER_FAILED.
func (c *PlannerClient) GeneratePlan(ctx context.Context, payload *wizard.PlanRequest) (*wizard.PlanResponse, error) {
	start := time.Now()
	resp, err := c.post(ctx, "/generate-plan", payload)
	c.metrics.ObservePlannerRequest("generate", err == nil, time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPlannerUnreachable.Code, appErrors.ErrPlannerUnreachable.Status, appErrors.ErrPlannerUnreachable.Message)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPlannerUnreachable.Code, appErrors.ErrPlannerUnreachable.Status, appErrors.ErrPlannerUnreachable.Message)
	}

	var plan wizard.PlanResponse
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPlannerFailed.Code, appErrors.ErrPlannerFailed.Status, "the planner service returned an unreadable reply")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !plan.OK {
		message := plan.Message
		if message == "" {
			message = fmt.Sprintf("planner replied with status %d", resp.StatusCode)
		}
		c.logger.Warn("planner rejected generation", zap.Int("status", resp.StatusCode), zap.String("message", message))
		return nil, appErrors.Clone(appErrors.ErrPlannerFailed, message)
	}

	return &plan, nil
}

// RenderDocument asks the planner service to render a PDF from the last
// payload and plan, returning the binary body and its content type.
func (c *PlannerClient) RenderDocument(ctx context.Context, kind string, payload *wizard.PlanRequest) ([]byte, string, error) {
	if kind != DocumentClassesPDF && kind != DocumentProfessorsPDF {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unknown document kind")
	}

	start := time.Now()
	resp, err := c.post(ctx, "/"+kind, payload)
	c.metrics.ObservePlannerRequest(kind, err == nil, time.Since(start))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrPlannerUnreachable.Code, appErrors.ErrPlannerUnreachable.Status, appErrors.ErrPlannerUnreachable.Message)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", appErrors.Clone(appErrors.ErrPlannerFailed, fmt.Sprintf("planner replied with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrPlannerUnreachable.Code, appErrors.ErrPlannerUnreachable.Status, appErrors.ErrPlannerUnreachable.Message)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return body, contentType, nil
}

func (c *PlannerClient) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal planner payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}
