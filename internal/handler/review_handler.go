package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pnext5524-creator/sekretar/internal/service"
	"github.com/pnext5524-creator/sekretar/pkg/response"
)

// ReviewHandler drives the legal-compliance review sub-workflow.
type ReviewHandler struct {
	review       *service.ReviewService
	orchestrator *service.OrchestratorService
}

// NewReviewHandler creates a new handler.
func NewReviewHandler(review *service.ReviewService, orchestrator *service.OrchestratorService) *ReviewHandler {
	return &ReviewHandler{review: review, orchestrator: orchestrator}
}

// Run godoc
// @Summary Analyze the current draft
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /review [post]
func (h *ReviewHandler) Run(c *gin.Context) {
	result, err := h.review.Run(c.Request.Context(), h.orchestrator.Draft())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Result godoc
// @Summary Current review state and result
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /review [get]
func (h *ReviewHandler) Result(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"state":  h.review.State(),
		"result": h.review.Result(),
	})
}

// Apply godoc
// @Summary Accept the suggested revision
// @Description Replaces the draft wholesale with the reviewer's revised text
// @Tags Review
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /review/apply [post]
func (h *ReviewHandler) Apply(c *gin.Context) {
	revised, err := h.review.Apply()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"draft": revised})
}
