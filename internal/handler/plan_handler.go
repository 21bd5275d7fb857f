package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orariofacile/planner-wizard-api/internal/dto"
	"github.com/orariofacile/planner-wizard-api/internal/service"
	"github.com/orariofacile/planner-wizard-api/pkg/response"
)

type planService interface {
	Generate(ctx context.Context, id string) (dto.PlanView, error)
	Progress(ctx context.Context, id string) (dto.ProgressView, error)
	Document(ctx context.Context, id, kind string) ([]byte, string, error)
	LastPlan(ctx context.Context, id string) (dto.PlanView, error)
}

// PlanHandler exposes plan generation and its document proxy.
type PlanHandler struct {
	service planService
}

// NewPlanHandler builds a new handler.
func NewPlanHandler(service planService) *PlanHandler {
	return &PlanHandler{service: service}
}

// Generate godoc
// @Summary Generate a plan
// @Description Assembles the payload, resolves the seed and awaits the planner once. 409 while a generation is already running.
// @Tags Generation
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /sessions/{id}/plan [post]
func (h *PlanHandler) Generate(c *gin.Context) {
	plan, err := h.service.Generate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// LastPlan godoc
// @Summary Get the last generated plan
// @Tags Generation
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/plan [get]
func (h *PlanHandler) LastPlan(c *gin.Context) {
	plan, err := h.service.LastPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// Progress godoc
// @Summary Get the generation progress estimate
// @Tags Generation
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/plan/progress [get]
func (h *PlanHandler) Progress(c *gin.Context) {
	progress, err := h.service.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress)
}

// ClassesDocument godoc
// @Summary Render the per-class timetable PDF
// @Description Proxies the last payload and plan to the planner service and streams the binary back.
// @Tags Generation
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Success 200 {file} binary
// @Failure 409 {object} response.Envelope
// @Router /sessions/{id}/plan/documents/classes-pdf [post]
func (h *PlanHandler) ClassesDocument(c *gin.Context) {
	h.document(c, service.DocumentClassesPDF)
}

// ProfessorsDocument godoc
// @Summary Render the per-professor timetable PDF
// @Tags Generation
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Success 200 {file} binary
// @Failure 409 {object} response.Envelope
// @Router /sessions/{id}/plan/documents/professors-pdf [post]
func (h *PlanHandler) ProfessorsDocument(c *gin.Context) {
	h.document(c, service.DocumentProfessorsPDF)
}

func (h *PlanHandler) document(c *gin.Context, kind string) {
	body, contentType, err := h.service.Document(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}
