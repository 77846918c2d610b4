package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/course-planner-api/internal/dto"
	"github.com/campushub/course-planner-api/internal/models"
	"github.com/campushub/course-planner-api/internal/service"
	appErrors "github.com/campushub/course-planner-api/pkg/errors"
	"github.com/campushub/course-planner-api/pkg/response"
)

type catalog interface {
	List(ctx context.Context, query dto.CourseListQuery) ([]dto.CourseResponse, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.CourseDetailResponse, error)
	Subjects(ctx context.Context, termID string) ([]string, error)
}

// CourseHandler exposes catalog browsing endpoints.
type CourseHandler struct {
	service catalog
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// List godoc
// @Summary List catalog courses for a term
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param termId query string true "Term ID"
// @Param subject query string false "Subject code filter"
// @Param keyword query string false "Title or code search"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	var query dto.CourseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid course query"))
		return
	}
	if query.TermID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId is required"))
		return
	}
	courses, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}

// Get godoc
// @Summary Fetch one course with its sections and meetings
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Subjects godoc
// @Summary List distinct subject codes offered in a term
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param termId query string true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /courses/subjects [get]
func (h *CourseHandler) Subjects(c *gin.Context) {
	termID := c.Query("termId")
	if termID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "termId is required"))
		return
	}
	subjects, err := h.service.Subjects(c.Request.Context(), termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
