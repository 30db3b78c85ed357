package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
	"github.com/ManithKumarpace/Edu-Pilot/internal/service"
	appErrors "github.com/ManithKumarpace/Edu-Pilot/pkg/errors"
	"github.com/ManithKumarpace/Edu-Pilot/pkg/response"
)

type timetableGenerator interface {
	BuildRoster(ctx context.Context, req dto.BuildRosterRequest) (*dto.RosterResponse, error)
	GenerateExam(ctx context.Context, req dto.GenerateExamRequest) (*dto.ExamTimetableResponse, error)
	GenerateWeekly(ctx context.Context, req dto.GenerateWeeklyRequest) (*dto.WeeklyTimetableResponse, error)
	GetPreview(ctx context.Context, id string) (*dto.TimetablePreview, error)
	DeletePreview(ctx context.Context, id string) error
	Export(ctx context.Context, id string, req dto.ExportRequest) (*dto.ExportResponse, error)
	OpenDownload(token string) (*service.Download, error)
}

// TimetableHandler exposes the timetable generation endpoints.
type TimetableHandler struct {
	service timetableGenerator
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// BuildRoster godoc
// @Summary Build the section-level teacher roster
// @Description Assigns class teachers, balances load, adds electives and expands grades into sections.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.BuildRosterRequest true "Teacher table"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetables/roster [post]
func (h *TimetableHandler) BuildRoster(c *gin.Context) {
	var req dto.BuildRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid roster payload"))
		return
	}
	result, err := h.service.BuildRoster(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, map[string]interface{}{"seed": result.Seed})
}

// GenerateExam godoc
// @Summary Generate an exam timetable
// @Description Schedules each class's subjects on non-Sunday dates in the range, spacing them where possible.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateExamRequest true "Subject table and date range"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /timetables/exam [post]
func (h *TimetableHandler) GenerateExam(c *gin.Context) {
	var req dto.GenerateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exam payload"))
		return
	}
	result, err := h.service.GenerateExam(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, map[string]interface{}{"previewId": result.PreviewID, "seed": result.Seed})
}

// GenerateWeekly godoc
// @Summary Generate weekly class and teacher timetables
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateWeeklyRequest true "Teacher table and optional curriculum"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetables/weekly [post]
func (h *TimetableHandler) GenerateWeekly(c *gin.Context) {
	var req dto.GenerateWeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid weekly payload"))
		return
	}
	result, err := h.service.GenerateWeekly(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result, map[string]interface{}{"previewId": result.PreviewID, "seed": result.Seed})
}

// GetPreview godoc
// @Summary Fetch a generated timetable preview
// @Tags Timetables
// @Produce json
// @Param id path string true "Preview ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/previews/{id} [get]
func (h *TimetableHandler) GetPreview(c *gin.Context) {
	preview, err := h.service.GetPreview(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}

// DeletePreview godoc
// @Summary Discard a generated timetable preview
// @Tags Timetables
// @Param id path string true "Preview ID"
// @Success 204
// @Router /timetables/previews/{id} [delete]
func (h *TimetableHandler) DeletePreview(c *gin.Context) {
	if err := h.service.DeletePreview(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a preview as CSV or PDF
// @Description Renders the exam table, class grids or teacher grids and returns a signed download URL.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param id path string true "Preview ID"
// @Param payload body dto.ExportRequest true "Export options"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetables/previews/{id}/export [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.service.Export(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an exported timetable
// @Tags Timetables
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /timetables/downloads/{token} [get]
func (h *TimetableHandler) Download(c *gin.Context) {
	file, err := h.service.OpenDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
