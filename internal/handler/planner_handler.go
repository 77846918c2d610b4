package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/internal/middleware"
	"github.com/campushub/course-planner-api/internal/service"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
	"github.com/campushub/course-planner-api/pkg/response"
)

type planner interface {
	Validate(ctx context.Context, req dto.ValidateScheduleRequest) (*dto.ValidateScheduleResponse, error)
	Optimize(ctx context.Context, studentID string, req dto.OptimizePlanRequest) (*dto.OptimizePlanResponse, error)
	Save(ctx context.Context, studentID string, req dto.SavePlanRequest) (*dto.SavePlanResponse, error)
	GetSchedule(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context, studentID, termID string) ([]dto.ScheduleSummaryResponse, error)
	SubmitSchedule(ctx context.Context, studentID, id string) (*dto.SubmitScheduleResponse, error)
	DeleteSchedule(ctx context.Context, studentID, id string) error
}

type scheduleExporter interface {
	Export(ctx context.Context, scheduleID, format string) (*service.ExportFile, error)
}

// PlannerHandler exposes validation, optimization and schedule endpoints.
type PlannerHandler struct {
	service planner
	export  scheduleExporter
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(svc *service.PlannerService, export *service.ExportService) *PlannerHandler {
	return &PlannerHandler{service: svc, export: export}
}

// Validate godoc
// @Summary Validate a section selection against hard constraints
// @Description Checks a selection, or a saved schedule, for time conflicts and constraint violations. All violations are reported.
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ValidateScheduleRequest true "Validation payload"
// @Success 200 {object} response.Envelope
// @Router /plans/validate [post]
func (h *PlannerHandler) Validate(c *gin.Context) {
	var req dto.ValidateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid validation payload"))
		return
	}
	result, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Optimize godoc
// @Summary Generate ranked conflict-free schedule candidates
// @Description Enumerates conflict-free schedules over the requested courses and returns the top candidates by preference score.
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.OptimizePlanRequest true "Optimization payload"
// @Success 200 {object} response.Envelope
// @Router /plans/optimize [post]
func (h *PlannerHandler) Optimize(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.OptimizePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid optimization payload"))
		return
	}
	result, err := h.service.Optimize(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist one ranked candidate from a previous optimization
// @Tags Planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SavePlanRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /plans/save [post]
func (h *PlannerHandler) Save(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid save payload"))
		return
	}
	result, err := h.service.Save(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetSchedule godoc
// @Summary Fetch a saved schedule with resolved sections
// @Tags Planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *PlannerHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.service.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// ListSchedules godoc
// @Summary List the caller's saved schedules for a term
// @Tags Planner
// @Produce json
// @Security BearerAuth
// @Param termId query string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *PlannerHandler) ListSchedules(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var query dto.ScheduleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid schedule query"))
		return
	}
	if query.TermID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId is required"))
		return
	}
	schedules, err := h.service.ListSchedules(c.Request.Context(), claims.UserID, query.TermID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// SubmitSchedule godoc
// @Summary Submit a draft schedule
// @Tags Planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/submit [post]
func (h *PlannerHandler) SubmitSchedule(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.service.SubmitSchedule(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// DeleteSchedule godoc
// @Summary Delete a saved schedule
// @Tags Planner
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *PlannerHandler) DeleteSchedule(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.DeleteSchedule(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportSchedule godoc
// @Summary Download a saved schedule as CSV or PDF
// @Tags Planner
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} file
// @Router /schedules/{id}/export [get]
func (h *PlannerHandler) ExportSchedule(c *gin.Context) {
	file, err := h.export.Export(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Data)
}
