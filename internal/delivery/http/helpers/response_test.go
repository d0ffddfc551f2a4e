package helpers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

func TestWriteValidationError(t *testing.T) {
	verr := domain.NewValidationError("title", "title is required")
	verr.Add("tags", "tags must contain at least one non-empty item")

	rr := httptest.NewRecorder()
	WriteValidationError(rr, verr)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
	assert.Equal(t, "title is required; tags must contain at least one non-empty item", resp.Error.Message)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "tags", resp.Error.Fields[1].Field)
	assert.Nil(t, resp.Data)
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteValidationError(rr, errors.New("bad"))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NotContains(t, rr.Body.String(), "fields")
}
