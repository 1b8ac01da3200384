package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) UpdateInventory(ctx context.Context, entries []interface{}) (domain.BatchResult, error) {
	args := m.Called(ctx, entries)
	return args.Get(0).(domain.BatchResult), args.Error(1)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUpdateInventoryHandler_InvalidInput(t *testing.T) {
	bodies := map[string]string{
		"empty body":       "",
		"not json":         "{items",
		"items missing":    `{}`,
		"items not a list": `{"items":"Widget"}`,
		"empty list":       `{"items":[]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			svc := new(MockInventoryService)
			h := NewHandler(svc, logger.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/update_inventory", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.UpdateInventoryHandler(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, MsgInvalidInput, decodeError(t, rec).Message)
			svc.AssertNotCalled(t, "UpdateInventory", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateInventoryHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(new(MockInventoryService), logger.NewNop())
	rec := httptest.NewRecorder()
	h.UpdateInventoryHandler(rec, httptest.NewRequest(http.MethodGet, "/update_inventory", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestUpdateInventoryHandler_Success(t *testing.T) {
	svc := new(MockInventoryService)
	h := NewHandler(svc, logger.NewNop())

	fifteen := 15
	result := domain.BatchResult{Updates: []domain.AdjustmentOutcome{{
		ItemName: "Widget", CompanyName: "Acme", Status: domain.StatusSuccess,
		Message: "Inventory updated successfully. New quantity: 15", NewQuantity: &fifteen,
	}}}
	svc.On("UpdateInventory", mock.Anything, mock.MatchedBy(func(entries []interface{}) bool {
		return len(entries) == 1
	})).Return(result, nil).Once()

	body := `{"items":[{"item_name":"Widget","company_name":"Acme","quantity":"5","type":"add"}]}`
	rec := httptest.NewRecorder()
	h.UpdateInventoryHandler(rec, httptest.NewRequest(http.MethodPost, "/update_inventory", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.BatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, result, got)
	svc.AssertExpectations(t)
}

func TestUpdateInventoryHandler_ServiceErrors(t *testing.T) {
	missing := apperror.NewMissingItemsError([]domain.MissingItemDetail{
		{ItemName: "Ghost", CompanyName: "Acme", Error: domain.MsgItemNotFound},
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing items", missing, http.StatusNotFound, domain.MsgMissingItemsBatch},
		{"storage failure", apperror.NewInternalError("Error accessing database", errors.New("boom")), http.StatusInternalServerError, "Error accessing database"},
		{"timeout", apperror.NewTimeoutError("Request timed out", context.DeadlineExceeded), http.StatusInternalServerError, "Request timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockInventoryService)
			svc.On("UpdateInventory", mock.Anything, mock.Anything).Return(domain.BatchResult{}, tt.err).Once()
			h := NewHandler(svc, logger.NewNop())

			body := `{"items":[{"item_name":"Ghost","company_name":"Acme","quantity":"1","type":"add"}]}`
			rec := httptest.NewRecorder()
			h.UpdateInventoryHandler(rec, httptest.NewRequest(http.MethodPost, "/update_inventory", strings.NewReader(body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantMsg, resp.Message)
			if tt.wantStatus == http.StatusNotFound {
				require.Len(t, resp.Details, 1)
				assert.Equal(t, "Ghost", resp.Details[0].ItemName)
			}
		})
	}
}
