package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nearby/internal/models/response_models"
)

const modelFailureMessage = "Failed to fetch data from Gemini API."

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

// RespondSuccess writes the bare result. Clients unwrap nothing on success.
func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, response_models.ErrorResponse{
		Error:   message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrMissingLocation),
		errors.Is(err, ErrMissingCategory),
		errors.Is(err, ErrMissingPlaceName):
		RespondError(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, ErrInvalidAction):
		RespondError(c, http.StatusBadRequest, "Invalid action specified")
	case errors.Is(err, ErrDatabaseError):
		logger.Error("Database error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	case errors.Is(err, ErrModelFailure), errors.Is(err, ErrInvalidModelResponse):
		logger.Error("Error processing model request", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, modelFailureMessage)
	default:
		logger.Error("Unknown error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, modelFailureMessage)
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingPlaceName):
		return "Place name and location are required."
	default:
		return "Location and category are required."
	}
}
