package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavkamat7/SusegadSnacks/internal/domain/shared"
	"github.com/pranavkamat7/SusegadSnacks/internal/interfaces/http/dto"
)

func TestBaseHandler_HandleError_DomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "insufficient stock",
			err:        shared.ErrInsufficientStock,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "version conflict",
			err:        shared.NewDomainError("CONCURRENCY_CONFLICT", "The order has been modified by another transaction"),
			wantStatus: http.StatusConflict,
			wantCode:   "CONCURRENCY_CONFLICT",
		},
		{
			name:       "invalid quantity",
			err:        shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_QUANTITY",
		},
		{
			name:       "unknown error is not leaked",
			err:        errors.New("pq: connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleError_UnknownErrorMessageHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(c, errors.New("dial tcp 10.0.0.5:5432: i/o timeout"))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotContains(t, resp.Error.Message, "10.0.0.5")
}

func TestParseUUIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "550e8400-e29b-41d4-a716-446655440000"}}

	id, ok := parseUUIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())

	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = parseUUIDParam(c, "id")
	assert.False(t, ok)
}
