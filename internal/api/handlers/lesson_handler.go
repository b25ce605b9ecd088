package handlers

import (
	"net/http"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/service"
	"lesson-reservations/pkg/validator"

	"github.com/gin-gonic/gin"
)

// LessonHandler handles lesson calendar HTTP requests
type LessonHandler struct {
	lessonService *service.LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
	}
}

// CreateLesson handles POST /api/v1/lessons
func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var input domain.LessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&input); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	lesson, err := h.lessonService.CreateLesson(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create lesson")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Lesson created successfully",
		Data:    lesson,
	})
}

// GetLesson handles GET /api/v1/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lesson, err := h.lessonService.GetLesson(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get lesson")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lesson,
	})
}

// GetLessons handles GET /api/v1/lessons with optional day filter
func (h *LessonHandler) GetLessons(c *gin.Context) {
	var (
		lessons []*domain.Lesson
		err     error
	)

	if day := c.Query("day"); day != "" {
		lessons, err = h.lessonService.GetLessonsByDay(c.Request.Context(), day)
	} else {
		lessons, err = h.lessonService.GetAllLessons(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, "Failed to list lessons")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lessons,
	})
}

// UpdateLesson handles PATCH /api/v1/lessons/:id
func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var updates domain.LessonUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	lesson, err := h.lessonService.UpdateLesson(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, err, "Failed to update lesson")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Lesson updated successfully",
		Data:    lesson,
	})
}

// BulkLessonRequest selects lessons by filter and optionally carries updates.
type BulkLessonRequest struct {
	Filter  domain.LessonFilter `json:"filter"`
	Updates domain.LessonUpdate `json:"updates"`
}

// BulkUpdateLessons handles POST /api/v1/lessons/bulk-update
func (h *LessonHandler) BulkUpdateLessons(c *gin.Context) {
	var req BulkLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	affected, err := h.lessonService.BulkUpdateLessons(c.Request.Context(), req.Filter, req.Updates)
	if err != nil {
		respondError(c, err, "Failed to update lessons")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Lessons updated successfully",
		Data:    gin.H{"affected": affected},
	})
}

// BulkDeleteLessons handles POST /api/v1/lessons/bulk-delete
func (h *LessonHandler) BulkDeleteLessons(c *gin.Context) {
	var req BulkLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	affected, err := h.lessonService.BulkDeleteLessons(c.Request.Context(), req.Filter)
	if err != nil {
		respondError(c, err, "Failed to delete lessons")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Lessons deleted successfully",
		Data:    gin.H{"affected": affected},
	})
}

// GetCourseLessons handles GET /api/v1/courses/:id/lessons
func (h *LessonHandler) GetCourseLessons(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lessons, err := h.lessonService.GetLessonsByCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to list course lessons")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    lessons,
	})
}
