package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pnext5524-creator/sekretar/internal/service"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/response"
)

// DictationHandler drives the voice-capture sub-workflow.
type DictationHandler struct {
	capture *service.CaptureService
}

// NewDictationHandler creates a new handler.
func NewDictationHandler(capture *service.CaptureService) *DictationHandler {
	return &DictationHandler{capture: capture}
}

// Start godoc
// @Summary Start a dictation session
// @Tags Dictation
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /dictation/start [post]
func (h *DictationHandler) Start(c *gin.Context) {
	var req struct {
		MimeType string `json:"mime_type"`
	}
	// Body is optional, the mime type defaults when absent.
	_ = c.ShouldBindJSON(&req)

	if err := h.capture.Start(c.Request.Context(), req.MimeType); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"state": h.capture.State()})
}

// Chunk godoc
// @Summary Append an audio chunk to the active session
// @Tags Dictation
// @Accept application/octet-stream
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dictation/chunk [post]
func (h *DictationHandler) Chunk(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read audio chunk"))
		return
	}
	if err := h.capture.Chunk(data); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"state": h.capture.State(), "bytes": len(data)})
}

// Stop godoc
// @Summary Stop recording and transcribe
// @Description Appends the transcript to the workspace instruction
// @Tags Dictation
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /dictation/stop [post]
func (h *DictationHandler) Stop(c *gin.Context) {
	text, err := h.capture.Stop(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"state": h.capture.State(), "transcript": text})
}
