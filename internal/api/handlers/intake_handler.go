package handlers

import (
	"net/http"

	"lesson-reservations/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntakeHandler handles spreadsheet participant uploads
type IntakeHandler struct {
	intakeService *service.IntakeService
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
	}
}

// Import handles POST /api/v1/admin/imports. The multipart form carries the
// workbook under "file" and the target lesson under "lesson_id".
func (h *IntakeHandler) Import(c *gin.Context) {
	lessonID, err := uuid.Parse(c.PostForm("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid lesson_id",
			Errors:  err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Missing spreadsheet file",
			Errors:  err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Failed to open spreadsheet file",
			Errors:  err.Error(),
		})
		return
	}
	defer file.Close()

	result, err := h.intakeService.ImportAndRegister(c.Request.Context(), file, lessonID)
	if err != nil {
		respondError(c, err, "Import failed")
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Participants imported successfully",
		Data:    result,
	})
}
