package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/orariofacile/planner-wizard-api/internal/dto"
	"github.com/orariofacile/planner-wizard-api/internal/wizard"
	appErrors "github.com/orariofacile/planner-wizard-api/pkg/errors"
	"github.com/orariofacile/planner-wizard-api/pkg/response"
)

type wizardService interface {
	Open(ctx context.Context, req dto.OpenSessionRequest) (dto.SessionView, error)
	Get(ctx context.Context, id string) (dto.SessionView, error)
	Close(ctx context.Context, id string) error
	SubmitStep1(ctx context.Context, id string, req dto.Step1Request) (dto.SessionView, error)
	Navigate(ctx context.Context, id string, req dto.NavigateRequest) (dto.NavigateResponse, error)
	EditHoursCell(ctx context.Context, id string, req dto.HoursEditRequest) (dto.HoursEditResponse, error)
	EditAvailabilityCell(ctx context.Context, id string, req dto.AvailabilityEditRequest) (dto.AvailabilityEditResponse, error)
	HoursGrid(ctx context.Context, id string) (wizard.HoursGrid, error)
	AvailabilityGrid(ctx context.Context, id string) (wizard.AvailabilityGrid, error)
	Summary(ctx context.Context, id string) (wizard.Summary, error)
	ShareLink(ctx context.Context, id string) (dto.ShareLinkView, error)
	ExportSnapshot(ctx context.Context, id string) (wizard.PersistedSnapshot, error)
	ImportSnapshot(ctx context.Context, id string, snap wizard.PersistedSnapshot) (dto.SessionView, error)
	ExportStep1Document(ctx context.Context, id string) (wizard.Step1Document, error)
	ImportStep1Document(ctx context.Context, id string, doc wizard.Step1Document) (dto.SessionView, error)
	ExportHoursDocument(ctx context.Context, id string) (wizard.HoursDocument, error)
	ImportHoursDocument(ctx context.Context, id string, doc wizard.HoursDocument) (dto.SessionView, error)
	ExportAvailabilityDocument(ctx context.Context, id string) (wizard.AvailabilityDocument, error)
	ImportAvailabilityDocument(ctx context.Context, id string, doc wizard.AvailabilityDocument) (dto.SessionView, error)
	SetSeed(ctx context.Context, id string, req dto.SeedRequest) (dto.SessionView, error)
	SetMethod(ctx context.Context, id string, req dto.MethodRequest) (dto.SessionView, error)
	Reset(ctx context.Context, id string, req dto.ResetRequest) (dto.SessionView, error)
}

// WizardHandler exposes the wizard session endpoints.
type WizardHandler struct {
	service  wizardService
	validate *validator.Validate
}

// NewWizardHandler builds a new handler.
func NewWizardHandler(service wizardService) *WizardHandler {
	return &WizardHandler{service: service, validate: validator.New()}
}

// Open godoc
// @Summary Create or resume a wizard session
// @Description Without a fragment the session starts at factory defaults and any durable slot is cleared; with a fragment the state rehydrates from it.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.OpenSessionRequest false "Session options"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *WizardHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
			return
		}
	}
	if fragment := c.Query("state"); fragment != "" {
		req.Fragment = fragment
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}

	view, err := h.service.Open(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Get godoc
// @Summary Get a session's current state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *WizardHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Close godoc
// @Summary Drop a session from memory
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204 {object} nil
// @Router /sessions/{id} [delete]
func (h *WizardHandler) Close(c *gin.Context) {
	if err := h.service.Close(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SubmitStep1 godoc
// @Summary Submit the step-1 form
// @Description Validates the raw form fields; on failure nothing changes and the error carries per-field flags.
// @Tags Steps
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.Step1Request true "Step-1 form"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/step1 [put]
func (h *WizardHandler) SubmitStep1(c *gin.Context) {
	var req dto.Step1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid step-1 payload"))
		return
	}

	view, err := h.service.SubmitStep1(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Navigate godoc
// @Summary Move between wizard steps
// @Tags Steps
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.NavigateRequest true "Direction or target step"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/navigate [post]
func (h *WizardHandler) Navigate(c *gin.Context) {
	var req dto.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid navigation payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid navigation payload"))
		return
	}

	result, err := h.service.Navigate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// EditHours godoc
// @Summary Edit one workload cell
// @Description Canonical indices; blank or unparseable values count as zero. Returns the recomputed row total.
// @Tags Grids
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.HoursEditRequest true "Cell edit"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/hours [patch]
func (h *WizardHandler) EditHours(c *gin.Context) {
	var req dto.HoursEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cell edit payload"))
		return
	}

	result, err := h.service.EditHoursCell(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// EditAvailability godoc
// @Summary Flip one availability checkbox
// @Tags Grids
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.AvailabilityEditRequest true "Cell edit"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/availability [patch]
func (h *WizardHandler) EditAvailability(c *gin.Context) {
	var req dto.AvailabilityEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cell edit payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cell edit payload"))
		return
	}

	result, err := h.service.EditAvailabilityCell(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// HoursGrid godoc
// @Summary Get the workload grid
// @Tags Grids
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/grids/hours [get]
func (h *WizardHandler) HoursGrid(c *gin.Context) {
	grid, err := h.service.HoursGrid(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

// AvailabilityGrid godoc
// @Summary Get the availability grid
// @Tags Grids
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/grids/availability [get]
func (h *WizardHandler) AvailabilityGrid(c *gin.Context) {
	grid, err := h.service.AvailabilityGrid(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}

// Summary godoc
// @Summary Get the final-step recap
// @Tags Grids
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/summary [get]
func (h *WizardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// ShareLink godoc
// @Summary Get a shareable state link
// @Tags Snapshots
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/share-link [get]
func (h *WizardHandler) ShareLink(c *gin.Context) {
	link, err := h.service.ShareLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link)
}

// ExportSnapshot godoc
// @Summary Export the raw session snapshot
// @Tags Snapshots
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/snapshot [get]
func (h *WizardHandler) ExportSnapshot(c *gin.Context) {
	snap, err := h.service.ExportSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap)
}

// ImportSnapshot godoc
// @Summary Replace the session state from a snapshot
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body wizard.PersistedSnapshot true "Snapshot"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/snapshot [put]
func (h *WizardHandler) ImportSnapshot(c *gin.Context) {
	var snap wizard.PersistedSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrDecode.Code, http.StatusBadRequest, "invalid snapshot payload"))
		return
	}

	view, err := h.service.ImportSnapshot(c.Request.Context(), c.Param("id"), snap)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ExportStep1Document godoc
// @Summary Export the step-1 parameters document
// @Tags Documents
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/documents/step1 [get]
func (h *WizardHandler) ExportStep1Document(c *gin.Context) {
	doc, err := h.service.ExportStep1Document(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// ImportStep1Document godoc
// @Summary Import a step-1 parameters document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body wizard.Step1Document true "Document"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/documents/step1 [put]
func (h *WizardHandler) ImportStep1Document(c *gin.Context) {
	var doc wizard.Step1Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	view, err := h.service.ImportStep1Document(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ExportHoursDocument godoc
// @Summary Export the workload matrix document
// @Tags Documents
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/documents/hours [get]
func (h *WizardHandler) ExportHoursDocument(c *gin.Context) {
	doc, err := h.service.ExportHoursDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// ImportHoursDocument godoc
// @Summary Import a workload matrix document
// @Description Declared dimensions must match the live configuration exactly or the import is rejected wholesale.
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body wizard.HoursDocument true "Document"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/documents/hours [put]
func (h *WizardHandler) ImportHoursDocument(c *gin.Context) {
	var doc wizard.HoursDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	view, err := h.service.ImportHoursDocument(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ExportAvailabilityDocument godoc
// @Summary Export the availability matrix document
// @Tags Documents
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/documents/availability [get]
func (h *WizardHandler) ExportAvailabilityDocument(c *gin.Context) {
	doc, err := h.service.ExportAvailabilityDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc)
}

// ImportAvailabilityDocument godoc
// @Summary Import an availability matrix document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body wizard.AvailabilityDocument true "Document"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/documents/availability [put]
func (h *WizardHandler) ImportAvailabilityDocument(c *gin.Context) {
	var doc wizard.AvailabilityDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	view, err := h.service.ImportAvailabilityDocument(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SetSeed godoc
// @Summary Toggle the seed lock
// @Description Locking without a value mints and persists a random seed.
// @Tags Generation
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SeedRequest true "Seed lock"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/seed [patch]
func (h *WizardHandler) SetSeed(c *gin.Context) {
	var req dto.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seed payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seed payload"))
		return
	}

	view, err := h.service.SetSeed(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SetMethod godoc
// @Summary Switch the generation method
// @Tags Generation
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.MethodRequest true "Method"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/method [patch]
func (h *WizardHandler) SetMethod(c *gin.Context) {
	var req dto.MethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid method payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid method payload"))
		return
	}

	view, err := h.service.SetMethod(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Reset godoc
// @Summary Reset the state owned by one step
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ResetRequest true "Step to reset"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/reset [post]
func (h *WizardHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reset payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reset payload"))
		return
	}

	view, err := h.service.Reset(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
