package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "article not found", err: apperrors.ErrArticleNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "wrapped not found", err: fmt.Errorf("loading: %w", apperrors.ErrResourceNotFound), wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "custom not found", err: apperrors.NewNotFoundError("resource has no downloadable file"), wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidCredentials},
		{name: "account disabled", err: apperrors.ErrAccountDisabled, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeAccountDisabled},
		{name: "token expired", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeExpiredToken},
		{name: "token revoked", err: apperrors.ErrTokenRevoked, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeInvalidToken},
		{name: "email conflict", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceConflict},
		{name: "slug frozen", err: apperrors.ErrSlugImmutable, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceConflict},
		{name: "generic validation", err: apperrors.ErrValidationFailed, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "auth validation", err: fmt.Errorf("%w: email cannot be empty", services.ErrAuthValidation), wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "resource validation", err: fmt.Errorf("%w: unknown level", services.ErrResourceValidation), wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "article validation", err: fmt.Errorf("%w: title cannot be empty", services.ErrArticleValidation), wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "department validation", err: fmt.Errorf("%w: bad slug", services.ErrDepartmentValidation), wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidationFailed},
		{name: "unexpected error", err: errors.New("pq: out of shared memory"), wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := mapError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, detail)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestMapErrorHidesInternalDetails(t *testing.T) {
	status, detail := mapError(errors.New("pq: password authentication failed for user postgres"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, dto.ErrorSeverityCritical, detail.Severity)
	assert.NotContains(t, detail.Message, "postgres")
}

func TestMapErrorKeepsCustomMessage(t *testing.T) {
	_, detail := mapError(apperrors.NewConflictError("a like for this article already exists"))

	assert.Equal(t, dto.ErrorCodeResourceConflict, detail.Code)
	assert.Equal(t, "a like for this article already exists", detail.Message)
}
