package handlers

import (
	"net/http"

	"lesson-reservations/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles admin override and bulk assignment HTTP requests
type AdminHandler struct {
	registrationService *service.RegistrationService
	bulkService         *service.BulkAssignmentService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registrationService *service.RegistrationService, bulkService *service.BulkAssignmentService) *AdminHandler {
	return &AdminHandler{
		registrationService: registrationService,
		bulkService:         bulkService,
	}
}

// ForceRegisterRequest names the participant, lesson and override scope.
type ForceRegisterRequest struct {
	ParticipantID uuid.UUID `json:"participant_id" validate:"required"`
	LessonID      uuid.UUID `json:"lesson_id" validate:"required"`
	ForceCapacity bool      `json:"force_capacity"`
}

// ForceRegister handles POST /api/v1/admin/registrations/force
func (h *AdminHandler) ForceRegister(c *gin.Context) {
	var req ForceRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	result, err := h.registrationService.AdminForceRegister(c.Request.Context(), req.LessonID, req.ParticipantID, req.ForceCapacity)
	if err != nil {
		respondError(c, err, "Force registration failed")
		return
	}

	if !result.Success {
		c.JSON(http.StatusOK, APIResponse{
			Success: false,
			Message: result.Error,
		})
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Participant registered",
		Data:    result,
	})
}

// ForceCancel handles POST /api/v1/admin/registrations/:id/cancel
func (h *AdminHandler) ForceCancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.registrationService.ForceCancel(c.Request.Context(), id); err != nil {
		respondError(c, err, "Cancellation failed")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Registration cancelled successfully",
	})
}

// AdminBulkRegisterRequest registers one participant across many lessons.
type AdminBulkRegisterRequest struct {
	ParticipantID uuid.UUID   `json:"participant_id" validate:"required"`
	LessonIDs     []uuid.UUID `json:"lesson_ids" validate:"required,min=1"`
}

// BulkRegister handles POST /api/v1/admin/registrations/bulk
func (h *AdminHandler) BulkRegister(c *gin.Context) {
	var req AdminBulkRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	result, err := h.registrationService.AdminBulkRegister(c.Request.Context(), req.ParticipantID, req.LessonIDs)
	if err != nil {
		respondError(c, err, "Bulk registration failed")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Bulk registration processed",
		Data:    result,
	})
}

// BulkAssignRequest assigns a group of participants to a group of lessons.
type BulkAssignRequest struct {
	ParticipantIDs []uuid.UUID `json:"participant_ids" validate:"required,min=1"`
	LessonIDs      []uuid.UUID `json:"lesson_ids" validate:"required,min=1"`
}

// BulkAssign handles POST /api/v1/admin/assignments
func (h *AdminHandler) BulkAssign(c *gin.Context) {
	var req BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	result, err := h.bulkService.BulkAssignGroupToLessons(c.Request.Context(), req.ParticipantIDs, req.LessonIDs)
	if err != nil {
		respondError(c, err, "Bulk assignment failed")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Bulk assignment processed",
		Data:    result,
	})
}

// AssignCourseRequest assigns every cohort member of a course to lessons.
type AssignCourseRequest struct {
	CourseID  uuid.UUID   `json:"course_id" validate:"required"`
	LessonIDs []uuid.UUID `json:"lesson_ids" validate:"required,min=1"`
}

// AssignCourse handles POST /api/v1/admin/assignments/course
func (h *AdminHandler) AssignCourse(c *gin.Context) {
	var req AssignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	result, err := h.bulkService.AssignCourseToLessons(c.Request.Context(), req.CourseID, req.LessonIDs)
	if err != nil {
		respondError(c, err, "Course assignment failed")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Course assignment processed",
		Data:    result,
	})
}
