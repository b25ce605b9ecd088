package handlers

import (
	"net/http"

	domain "lesson-reservations/internal/domain/booking"
	"lesson-reservations/internal/service"
	"lesson-reservations/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CourseHandler handles course template HTTP requests
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input domain.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Course created successfully",
		Data:    course,
	})
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get course")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    course,
	})
}

// GetCourses handles GET /api/v1/courses
func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.courseService.GetAllCourses(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list courses")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    courses,
	})
}

// AddMemberRequest names the participant to add to a course cohort.
type AddMemberRequest struct {
	ParticipantID uuid.UUID `json:"participant_id" validate:"required"`
}

// AddMember handles POST /api/v1/courses/:id/members
func (h *CourseHandler) AddMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := h.courseService.AddMember(c.Request.Context(), id, req.ParticipantID); err != nil {
		respondError(c, err, "Failed to add course member")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Member added successfully",
	})
}

// ExpandTemplateRequest carries explicit dates plus the shared lesson template.
type ExpandTemplateRequest struct {
	Dates    []string              `json:"dates" validate:"required,min=1"`
	Template domain.LessonTemplate `json:"template" validate:"required"`
}

// ExpandTemplate handles POST /api/v1/courses/:id/lessons
func (h *CourseHandler) ExpandTemplate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req ExpandTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req.Template); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	lessons, err := h.courseService.CreateLessonsFromTemplate(c.Request.Context(), id, req.Dates, req.Template)
	if err != nil {
		respondError(c, err, "Failed to create lessons")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Lessons created successfully",
		Data:    lessons,
	})
}

// WeeklyLessonsRequest carries a start date and week count for recurrence.
type WeeklyLessonsRequest struct {
	StartDate  string                `json:"start_date" validate:"required,datetime=2006-01-02"`
	WeeksCount int                   `json:"weeks_count" validate:"required,gt=0"`
	Template   domain.LessonTemplate `json:"template" validate:"required"`
}

// CreateWeeklyLessons handles POST /api/v1/courses/:id/lessons/weekly
func (h *CourseHandler) CreateWeeklyLessons(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req WeeklyLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return
	}

	lessons, err := h.courseService.CreateWeeklyLessons(c.Request.Context(), id, req.StartDate, req.WeeksCount, req.Template)
	if err != nil {
		respondError(c, err, "Failed to create weekly lessons")
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Lessons created successfully",
		Data:    lessons,
	})
}
