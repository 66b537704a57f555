package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pnext5524-creator/sekretar/internal/service"
	appErrors "github.com/pnext5524-creator/sekretar/pkg/errors"
	"github.com/pnext5524-creator/sekretar/pkg/export"
	"github.com/pnext5524-creator/sekretar/pkg/response"
)

// ExportHandler serializes response text into EDMS packages.
type ExportHandler struct {
	service      *service.ExportService
	orchestrator *service.OrchestratorService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService, orchestrator *service.OrchestratorService) *ExportHandler {
	return &ExportHandler{service: svc, orchestrator: orchestrator}
}

type exportRequest struct {
	Text     string `json:"text"`
	FileName string `json:"file_name"`
}

// Package godoc
// @Summary Download an EDMS interchange package
// @Description Serializes the given text, or the current workspace draft when the body is empty
// @Tags Export
// @Accept json
// @Produce application/xml
// @Produce application/json
// @Param format query string true "Target system" Enums(onec, directum, delo)
// @Param payload body exportRequest false "Override text and file name"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /export [post]
func (h *ExportHandler) Package(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
			return
		}
	}

	text := req.Text
	fileName := req.FileName
	if text == "" {
		text = h.orchestrator.Draft()
	}
	if fileName == "" {
		fileName = h.orchestrator.Snapshot().FileName
	}

	pkg, err := h.service.Package(export.Format(c.Query("format")), text, fileName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, pkg.Filename, pkg.MimeType, []byte(pkg.Content))
}
