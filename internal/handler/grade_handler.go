package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/studytrack-api/internal/service"
	"github.com/studytrack/studytrack-api/pkg/response"
)

// GradeHandler exposes grade computation endpoints.
type GradeHandler struct {
	grades *service.GradeService
}

// NewGradeHandler constructs GradeHandler.
func NewGradeHandler(grades *service.GradeService) *GradeHandler {
	return &GradeHandler{grades: grades}
}

// CourseGrade godoc
// @Summary Get computed grade and breakdown for a course
// @Tags Grades
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/grade [get]
func (h *GradeHandler) CourseGrade(c *gin.Context) {
	courseID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	grade, err := h.grades.CourseGrade(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade, nil)
}

// Recalculate godoc
// @Summary Recompute and persist a course grade
// @Tags Grades
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/grade/recalculate [post]
func (h *GradeHandler) Recalculate(c *gin.Context) {
	courseID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	grade, err := h.grades.RecalculateCourseGrade(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"course_id": courseID, "current_grade": grade}, nil)
}

// GPA godoc
// @Summary Get cumulative credit-weighted GPA
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /gpa [get]
func (h *GradeHandler) GPA(c *gin.Context) {
	gpa, err := h.grades.GPA(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gpa, nil)
}
