package handlers

import (
	"net/http"

	"formgate/internal/api/constants"
	"formgate/internal/api/dto/v1/submission"
	"formgate/internal/api/middleware"
	"formgate/internal/logging"
	"formgate/internal/service"
	"formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// SubmissionHandler serves the public submit endpoint of one form variant.
type SubmissionHandler struct {
	pipeline *service.Pipeline
}

// NewSubmissionHandler creates a handler around a wired pipeline.
func NewSubmissionHandler(pipeline *service.Pipeline) *SubmissionHandler {
	return &SubmissionHandler{pipeline: pipeline}
}

// Submit runs the pipeline and writes the outcome in the wire shape the
// original endpoints used: flat {message} on success, WP_Error-style
// {code, message, data:{status}} on failure.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	raw, exists := c.Get(constants.ContextKeySubmission)
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	payload, ok := raw.(map[string]interface{})
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Submission data not found in context"})
		return
	}

	result := h.pipeline.Process(c.Request.Context(), payload)
	if result.Success() {
		c.JSON(http.StatusOK, submission.SuccessResponse{Message: result.Message})
		return
	}

	if result.Err != nil {
		logger := logging.GetGlobalLogger()
		logger.Error("[%s] submission %s failed: %s: %v",
			c.Request.URL.Path, middleware.RequestIDFromContext(c), result.Code, result.Err)
		logger.LogHTTPError(c.Request.Method, c.Request.URL.Path, utils.GetRealIP(c), result.Status, result.Code, result.Err)
	}

	c.JSON(result.Status, submission.ErrorResponse{
		Code:    result.Code,
		Message: result.Message,
		Data:    submission.ErrorData{Status: result.Status},
	})
}
