package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/noteshare/internal/app/models/dto"
	"github.com/tanvir/noteshare/internal/pkg/apperrors"
)

func handleAndDecode(t *testing.T, err error) (int, dto.ErrorDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleAPIError(c, err)

	var body struct {
		Error dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Error
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"note not found", apperrors.ErrNoteNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"rating not found", apperrors.ErrRatingNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"department not found", apperrors.ErrDepartmentNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"token expired", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"refresh token missing", apperrors.ErrTokenNotFound, 401, dto.ErrorCodeTokenNotFound},
		{"validation failed", apperrors.ErrValidationFailed, 400, dto.ErrorCodeValidationFailed},
		{"email taken", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"already rated", apperrors.ErrAlreadyRated, 400, dto.ErrorCodeValidationFailed},
		{"already commented", apperrors.ErrAlreadyCommented, 400, dto.ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := handleAndDecode(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestHandleAPIErrorKeepsCustomMessage(t *testing.T) {
	err := apperrors.NewForbiddenError("Only administrators can edit notes after creation")
	status, detail := handleAndDecode(t, err)

	assert.Equal(t, 403, status)
	assert.Equal(t, "Only administrators can edit notes after creation", detail.Message)
}

func TestHandleAPIErrorValidationMessage(t *testing.T) {
	err := apperrors.NewValidationError("You have already rated this note. You can update your existing rating instead.")
	status, detail := handleAndDecode(t, err)

	assert.Equal(t, 400, status)
	assert.Contains(t, detail.Message, "already rated this note")
}

func TestHandleAPIErrorDefaultsTo500(t *testing.T) {
	status, detail := handleAndDecode(t, errors.New("connection reset"))

	assert.Equal(t, 500, status)
	assert.Equal(t, dto.ErrorCodeInternalServer, detail.Code)
	assert.Equal(t, "connection reset", detail.Details)
}
