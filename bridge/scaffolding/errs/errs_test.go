package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktide/tasktide/bridge/scaffolding/errs"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code errs.ErrCode
		want int
	}{
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.NotFound, http.StatusNotFound},
		{errs.PermissionDenied, http.StatusForbidden},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.Internal, http.StatusInternalServerError},
		{errs.InternalOnlyLog, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := errs.Newf(tt.code, "boom")
		assert.Equal(t, tt.want, err.HTTPStatus())
	}
}

func TestEncode(t *testing.T) {
	err := errs.Newf(errs.NotFound, "task %s not found", "t1")

	data, contentType, encErr := err.Encode()
	require.NoError(t, encErr)
	assert.Equal(t, "application/json", contentType)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "not_found", got["code"])
	assert.Equal(t, "task t1 not found", got["message"])
}

func TestNewCapturesCaller(t *testing.T) {
	err := errs.New(errs.Internal, errors.New("db down"))

	assert.Equal(t, "db down", err.Error())
	assert.Contains(t, err.FileName, "errs_test.go")
	assert.NotEmpty(t, err.FuncName)
}

func TestIsError(t *testing.T) {
	base := errs.Newf(errs.PermissionDenied, "nope")
	wrapped := fmt.Errorf("handling request: %w", base)

	assert.True(t, errs.IsError(wrapped))
	assert.Equal(t, errs.PermissionDenied, errs.GetError(wrapped).Code)
	assert.False(t, errs.IsError(errors.New("plain")))
}
