package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pnext5524-creator/sekretar/internal/service"
	"github.com/pnext5524-creator/sekretar/pkg/response"
)

// ArchiveHandler exposes the generated-response log.
type ArchiveHandler struct {
	service *service.ArchiveService
	export  *service.ExportService
}

// NewArchiveHandler creates a new handler.
func NewArchiveHandler(svc *service.ArchiveService, export *service.ExportService) *ArchiveHandler {
	return &ArchiveHandler{service: svc, export: export}
}

// List godoc
// @Summary List archived responses
// @Description Newest-first; pass q for a case-insensitive substring filter over file name and instruction
// @Tags Archive
// @Produce json
// @Param q query string false "Search query"
// @Success 200 {object} response.Envelope
// @Router /archive [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// Delete godoc
// @Summary Delete an archived response
// @Tags Archive
// @Param id path string true "Archive item id"
// @Success 204 "No Content"
// @Router /archive/{id} [delete]
func (h *ArchiveHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkSent godoc
// @Summary Mark an archived response as sent
// @Tags Archive
// @Produce json
// @Param id path string true "Archive item id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /archive/{id}/sent [post]
func (h *ArchiveHandler) MarkSent(c *gin.Context) {
	item, err := h.service.MarkSent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Report godoc
// @Summary Download the archive as a tabular report
// @Tags Archive
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "Report format" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /archive/report [get]
func (h *ArchiveHandler) Report(c *gin.Context) {
	format := service.ReportFormat(c.Query("format"))
	if format == "" {
		format = service.ReportFormatCSV
	}

	pkg, err := h.export.Report(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, pkg.Filename, pkg.MimeType, []byte(pkg.Content))
}
