package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tributo/internal/csvexport"
	"tributo/internal/domain"
	"tributo/internal/f29"
	"tributo/internal/service"
)

// HeaderArchiveError reports why a successfully parsed declaration was not archived.
const HeaderArchiveError = "X-Archive-Error"

// multipartOverhead is the room left above the upload ceiling for multipart
// boundaries and part headers.
const multipartOverhead int64 = 64 << 10

var errUploadTooLarge = errors.New("upload exceeds the size limit")

// limitedBody records whether http.MaxBytesReader cut the body short, since
// multipart parsing does not always surface the original error.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		b.exceeded = true
	}
	return n, err
}

// DeclarationHandler handles F29 parsing and archive endpoints.
type DeclarationHandler struct {
	declarationService service.DeclarationService
}

// NewDeclarationHandler creates a new DeclarationHandler.
func NewDeclarationHandler(declarationService service.DeclarationService) *DeclarationHandler {
	return &DeclarationHandler{declarationService: declarationService}
}

// Catalogue handles GET /api/v1/f29/catalogue
// @Summary List recognized form codes
// @Tags f29
// @Produce json
// @Success 200 {object} Response{data=[]CatalogueEntry}
// @Router /f29/catalogue [get]
func (h *DeclarationHandler) Catalogue(c *gin.Context) {
	fields := f29.Catalogue()
	out := make([]CatalogueEntry, 0, len(fields))
	for _, f := range fields {
		out = append(out, CatalogueEntry{Code: f.Code, Label: f.Label, Group: f.Group})
	}
	RespondOK(c, out)
}

// Parse handles POST /api/v1/f29/parse
// @Summary Parse a Formulario 29 declaration
// @Description Accepts a multipart "file" field or a raw application/pdf body.
// @Description The response body is the parse outcome, not the standard envelope.
// @Tags f29
// @Accept multipart/form-data,application/pdf
// @Produce json
// @Param file formData file false "Declaration PDF"
// @Param persist query bool false "Archive the declaration when parsing succeeds"
// @Success 200 {object} ParseOutcomeDoc "Parsed declaration"
// @Failure 413 {object} ParseOutcomeDoc "PayloadTooLarge"
// @Failure 415 {object} ParseOutcomeDoc "InvalidMediaType"
// @Failure 422 {object} ParseOutcomeDoc "ExtractionFailed or NoCodesRecognized"
// @Router /f29/parse [post]
func (h *DeclarationHandler) Parse(c *gin.Context) {
	input, err := h.readUpload(c)
	if errors.Is(err, errUploadTooLarge) {
		outcome := f29.Fail(domain.ErrPayloadTooLarge, "")
		c.JSON(OutcomeStatus(outcome), outcome)
		return
	}
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", err.Error())
		return
	}
	input.Persist, _ = strconv.ParseBool(c.Query("persist"))

	result, err := h.declarationService.Parse(c.Request.Context(), input)
	if err != nil {
		if !service.IsArchiveError(err) || result == nil {
			HandleError(c, err)
			return
		}
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("declarationHandler.Parse: archive skipped")
		_, code, _ := MapDomainError(err)
		c.Header(HeaderArchiveError, code)
	}
	if result.Declaration != nil {
		c.Header("Location", "/api/v1/f29/declarations/"+result.Declaration.ID.String())
	}

	c.JSON(OutcomeStatus(result.Outcome), result.Outcome)
}

// readUpload reads at most one byte past the ceiling so oversize uploads reach
// the loader with their true size. Multipart bodies are capped before parsing
// so an oversize form is never spooled to disk.
func (h *DeclarationHandler) readUpload(c *gin.Context) (service.ParseInput, error) {
	limit := h.declarationService.MaxUploadBytes()
	ct := c.ContentType()

	var (
		r         io.Reader
		mediaType string
		size      int64
		name      string
	)
	if strings.HasPrefix(ct, "multipart/") {
		body := &limitedBody{ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)}
		c.Request.Body = body
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			if body.exceeded {
				return service.ParseInput{}, errUploadTooLarge
			}
			return service.ParseInput{}, errors.New("file field is required")
		}
		defer func() { _ = file.Close() }()
		r = file
		mediaType = header.Header.Get("Content-Type")
		size = header.Size
		name = header.Filename
	} else {
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			return service.ParseInput{}, errors.New("request body is empty")
		}
		r = c.Request.Body
		mediaType = c.GetHeader("Content-Type")
		size = c.Request.ContentLength
		name = c.Query("filename")
	}

	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return service.ParseInput{}, fmt.Errorf("reading upload: %w", err)
	}
	if size < int64(len(content)) {
		size = int64(len(content))
	}
	if mediaType == "" || strings.HasPrefix(mediaType, "application/octet-stream") {
		mediaType = mimetype.Detect(content).String()
	}

	return service.ParseInput{
		Content:   content,
		MediaType: mediaType,
		Size:      size,
		FileName:  name,
	}, nil
}

// List handles GET /api/v1/f29/declarations
// @Summary List archived declarations
// @Tags f29
// @Produce json
// @Param rut query string false "Filter by taxpayer RUT"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Declaration,meta=PagMeta}
// @Router /f29/declarations [get]
func (h *DeclarationHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	decls, total, err := h.declarationService.List(c.Request.Context(), c.Query("rut"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, decls, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/f29/declarations/:id
// @Summary Get an archived declaration
// @Tags f29
// @Produce json
// @Param id path string true "Declaration ID (UUID)"
// @Success 200 {object} Response{data=domain.Declaration}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Declaration not found"
// @Router /f29/declarations/{id} [get]
func (h *DeclarationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	decl, err := h.declarationService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, decl)
}

// Download handles GET /api/v1/f29/declarations/:id/download
// @Summary Get a presigned URL for the archived PDF
// @Tags f29
// @Produce json
// @Param id path string true "Declaration ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse}
// @Failure 404 {object} ErrorResponseBody "Declaration not found"
// @Router /f29/declarations/{id}/download [get]
func (h *DeclarationHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	url, err := h.declarationService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{DownloadURL: url})
}

// Reparse handles POST /api/v1/f29/declarations/:id/reparse
// @Summary Parse an archived declaration again
// @Description Runs the current pipeline over the archived PDF. The archived snapshot is not modified.
// @Tags f29
// @Produce json
// @Param id path string true "Declaration ID (UUID)"
// @Success 200 {object} ParseOutcomeDoc "Parsed declaration"
// @Failure 404 {object} ErrorResponseBody "Declaration not found"
// @Failure 422 {object} ParseOutcomeDoc "ExtractionFailed or NoCodesRecognized"
// @Router /f29/declarations/{id}/reparse [post]
func (h *DeclarationHandler) Reparse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.declarationService.Reparse(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(OutcomeStatus(outcome), outcome)
}

// Delete handles DELETE /api/v1/f29/declarations/:id
// @Summary Delete an archived declaration
// @Tags f29
// @Produce json
// @Param id path string true "Declaration ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Declaration not found"
// @Router /f29/declarations/{id} [delete]
func (h *DeclarationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.declarationService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "declaration deleted"})
}

// ExportCSV handles GET /api/v1/f29/declarations/export.csv
// @Summary Export archived declarations as CSV
// @Tags f29
// @Produce text/csv
// @Param rut query string false "Filter by taxpayer RUT"
// @Success 200 {file} file
// @Router /f29/declarations/export.csv [get]
func (h *DeclarationHandler) ExportCSV(c *gin.Context) {
	if !h.declarationService.ArchiveEnabled() {
		HandleError(c, domain.ErrArchiveDisabled)
		return
	}

	rut := c.Query("rut")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(rut, "csv")))
	c.Status(http.StatusOK)

	// Headers are already sent; a failure here can only be logged.
	if err := h.declarationService.ExportCSV(c.Request.Context(), rut, c.Writer); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("declarationHandler.ExportCSV: export aborted")
	}
}

// ExportXLSX handles GET /api/v1/f29/declarations/:id/export.xlsx
// @Summary Export one archived declaration as an XLSX workbook
// @Tags f29
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Declaration ID (UUID)"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponseBody "Declaration not found"
// @Router /f29/declarations/{id}/export.xlsx [get]
func (h *DeclarationHandler) ExportXLSX(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	data, err := h.declarationService.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(id.String(), "xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid declaration ID")
		return uuid.Nil, false
	}
	return id, true
}
