package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "kharcha/internal/errors"
	"kharcha/internal/logger"
	"kharcha/internal/middleware"
	"kharcha/internal/tenant"
	"kharcha/internal/uuid"
)

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Error apperrors.AppError `json:"error"`
}

// MessageResponse documents plain message responses for swagger.
type MessageResponse struct {
	Message string `json:"message"`
}

// getOwner extracts the authenticated tenant ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getOwner(c *gin.Context) (tenant.ID, error) {
	owner, exists := c.Get(middleware.OwnerKey)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return owner.(tenant.ID), nil
}

// parseRecordID validates a UUID path parameter. A malformed identifier is
// invalid input, distinct from a well-formed one that matches no record.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parseRecordID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
