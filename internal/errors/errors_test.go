package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "stockkeeper/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("Missing fields"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", apperror.NewUnauthorizedError("Token inválido"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperror.NewForbiddenError("Acesso negado"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", apperror.NewNotFoundError("Username not found"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperror.NewConflictError("duplicado"), http.StatusConflict, "CONFLICT"},
		{"internal", apperror.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"timeout", apperror.NewTimeoutError("expirou", context.DeadlineExceeded), http.StatusInternalServerError, "TIMEOUT"},
		{"wrapped", fmt.Errorf("camada: %w", apperror.NewNotFoundError("Item not found")), http.StatusNotFound, "NOT_FOUND"},
		{"untyped", errors.New("qualquer"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, category)
		})
	}
}

func TestNewDBError_KeepsBackendMessage(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	err := apperror.NewDBError("Falha ao buscar item", cause)

	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, apperror.IsTimeout(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.False(t, apperror.IsTimeout(context.Canceled))
	assert.False(t, apperror.IsTimeout(errors.New("syntax error")))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, apperror.IsCanceled(fmt.Errorf("query: %w", context.Canceled)))
	assert.False(t, apperror.IsCanceled(context.DeadlineExceeded))

	status, category, _ := apperror.MapToHTTPStatus(apperror.NewCanceledError("canceled", context.Canceled))
	assert.Equal(t, apperror.StatusClientClosedRequest, status)
	assert.Equal(t, "CANCELED", category)
}
