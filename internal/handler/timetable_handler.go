package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studytrack/studytrack-api/internal/service"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
	"github.com/studytrack/studytrack-api/pkg/response"
)

// TimetableHandler exposes weekly schedule endpoints.
type TimetableHandler struct {
	timetable *service.TimetableService
}

// NewTimetableHandler constructs TimetableHandler.
func NewTimetableHandler(timetable *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetable: timetable}
}

// Grid godoc
// @Summary Get merged weekly timetable grid
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Grid(c *gin.Context) {
	grid, err := h.timetable.Grid(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// PlaceSlot godoc
// @Summary Place a weekly slot on a course
// @Tags Timetable
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body service.PlaceSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/slots [put]
func (h *TimetableHandler) PlaceSlot(c *gin.Context) {
	courseID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.PlaceSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.timetable.PlaceSlot(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RemoveSlot godoc
// @Summary Remove a weekly slot from a course
// @Tags Timetable
// @Produce json
// @Param id path int true "Course ID"
// @Param day query string true "Weekday name"
// @Param startTime query string true "Slot start time, e.g. 9:00 AM"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/slots [delete]
func (h *TimetableHandler) RemoveSlot(c *gin.Context) {
	courseID, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	day := c.Query("day")
	startTime := c.Query("startTime")
	if day == "" || startTime == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day and startTime are required"))
		return
	}
	schedule, err := h.timetable.RemoveSlot(c.Request.Context(), courseID, day, startTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"schedule": schedule}, nil)
}
