package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidParam, http.StatusBadRequest},
		{CodeWorkNotFound, http.StatusNotFound},
		{CodeChapterNotFound, http.StatusNotFound},
		{CodeChapterTranslating, http.StatusConflict},
		{CodeGenerationFailed, http.StatusBadGateway},
		{CodeEmbeddingFailed, http.StatusBadGateway},
		{CodeServiceUnavailable, http.StatusServiceUnavailable},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeQueueError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "msg").HTTPStatus)
		})
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "failed to load chapter")

	assert.Contains(t, err.Error(), "failed to load chapter")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))
}

func TestAsAppError(t *testing.T) {
	appErr := AsAppError(ErrChapterNotFound)
	require.NotNil(t, appErr)
	assert.Equal(t, CodeChapterNotFound, appErr.Code)

	plain := AsAppError(errors.New("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, CodeUnknown, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
}

func TestWithDetail(t *testing.T) {
	err := New(CodeInvalidParam, "invalid parameter").WithDetail("progress must be 0-100")
	assert.Equal(t, "progress must be 0-100", err.Detail)
}
