package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/logger"
)

// HandleAPIError translates service and repository errors into the
// standard error response envelope
func HandleAPIError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status, errorDetail := mapError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request failed")
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

func mapError(err error) (int, *dto.ErrorDetail) {
	var custom *apperrors.CustomError
	message := ""
	if errors.As(err, &custom) {
		message = custom.Message
	}

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfileNotFound,
		apperrors.ErrDepartmentNotFound,
		apperrors.ErrResourceNotFound,
		apperrors.ErrArticleNotFound,
		apperrors.ErrCommentNotFound):
		if message == "" {
			message = err.Error()
		}
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		if message == "" {
			message = "You don't have permission to perform this operation"
		}
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message)

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")

	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "This account has been disabled")

	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")

	case apperrors.Is(err, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked,
		apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid or revoked token")

	case apperrors.Is(err, apperrors.ErrAlreadyExists,
		apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrDepartmentAlreadyExists,
		apperrors.ErrDepartmentHasRelations,
		apperrors.ErrSlugImmutable):
		if message == "" {
			message = err.Error()
		}
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message)

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		services.ErrAuthValidation,
		services.ErrInvalidEmail,
		services.ErrInvalidPassword,
		services.ErrDepartmentValidation,
		services.ErrResourceValidation,
		services.ErrArticleValidation):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An internal error occurred")
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityCritical)
		return http.StatusInternalServerError, errorDetail
	}
}
