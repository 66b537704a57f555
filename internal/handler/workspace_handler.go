package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pnext5524-creator/sekretar/internal/models"
	"github.com/pnext5524-creator/sekretar/internal/service"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/response"
)

// WorkspaceHandler drives the drafting workspace: source upload,
// instruction editing, generation and manual draft edits.
type WorkspaceHandler struct {
	orchestrator *service.OrchestratorService
}

// NewWorkspaceHandler creates a new handler.
func NewWorkspaceHandler(orchestrator *service.OrchestratorService) *WorkspaceHandler {
	return &WorkspaceHandler{orchestrator: orchestrator}
}

// Snapshot godoc
// @Summary Current workspace state
// @Tags Workspace
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workspace [get]
func (h *WorkspaceHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.orchestrator.Snapshot())
}

// AttachSource godoc
// @Summary Attach the source document
// @Description Accepts a base64-encoded image or PDF
// @Tags Workspace
// @Accept json
// @Produce json
// @Param payload body models.AttachSourceRequest true "Source file"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /workspace/source [put]
func (h *WorkspaceHandler) AttachSource(c *gin.Context) {
	var req models.AttachSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid source payload"))
		return
	}
	if err := h.orchestrator.AttachSource(req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.orchestrator.Snapshot())
}

// SetInstruction godoc
// @Summary Replace the instruction text
// @Tags Workspace
// @Accept json
// @Produce json
// @Param payload body models.SetInstructionRequest true "Instruction"
// @Success 200 {object} response.Envelope
// @Router /workspace/instruction [put]
func (h *WorkspaceHandler) SetInstruction(c *gin.Context) {
	var req models.SetInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid instruction payload"))
		return
	}
	if err := h.orchestrator.SetInstruction(req.Text); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.orchestrator.Snapshot())
}

// Generate godoc
// @Summary Run one drafting cycle
// @Description Requires an attached source file, a non-blank instruction and an idle dictation session
// @Tags Workspace
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /workspace/generate [post]
func (h *WorkspaceHandler) Generate(c *gin.Context) {
	item, err := h.orchestrator.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"workspace": h.orchestrator.Snapshot(),
		"archived":  item,
	})
}

// Reset godoc
// @Summary Clear the workspace
// @Tags Workspace
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workspace/reset [post]
func (h *WorkspaceHandler) Reset(c *gin.Context) {
	h.orchestrator.Reset()
	response.JSON(c, http.StatusOK, h.orchestrator.Snapshot())
}

// SetDraft godoc
// @Summary Apply a manual edit to the draft
// @Description Replaces the draft text and discards any stored review result
// @Tags Workspace
// @Accept json
// @Produce json
// @Param payload body models.SetDraftRequest true "Draft text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /workspace/draft [put]
func (h *WorkspaceHandler) SetDraft(c *gin.Context) {
	var req models.SetDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}
	if err := h.orchestrator.SetDraft(req.Text); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.orchestrator.Snapshot())
}
