package util_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hbomb79/Tubely/internal/api/util"
	"github.com/hbomb79/Tubely/internal/ingest"
	"github.com/labstack/echo/v4"
	"gotest.tools/v3/assert"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ingest.ErrInvalidInput, http.StatusBadRequest, util.CodeInvalidInput},
		{ingest.ErrForbidden, http.StatusForbidden, util.CodeForbidden},
		{ingest.ErrNotFound, http.StatusNotFound, util.CodeNotFound},
		{ingest.ErrProcessingFailed, http.StatusInternalServerError, util.CodeProcessingFailed},
		{ingest.ErrStorageUnavailable, http.StatusServiceUnavailable, util.CodeStorageUnavailable},
		{errors.New("database exploded"), http.StatusInternalServerError, util.CodeInternal},
	}

	for _, test := range tests {
		t.Run(test.code, func(t *testing.T) {
			wrapped := fmt.Errorf("%w: with some detail", test.err)
			apiErr := util.ToAPIError(wrapped)
			assert.Equal(t, apiErr.Status, test.status)
			assert.Equal(t, apiErr.Code, test.code)
		})
	}
}

func TestToAPIError_HidesServerErrorDetail(t *testing.T) {
	apiErr := util.ToAPIError(fmt.Errorf("%w: ffmpeg exited with status 1 for /tmp/secret.mp4", ingest.ErrProcessingFailed))
	assert.Assert(t, apiErr.InternalMessage != "")
	assert.Equal(t, apiErr.Message, "Failed to process upload")
}

func TestToAPIError_StoreFailureWithoutKind(t *testing.T) {
	apiErr := util.ToAPIError(fmt.Errorf("failed to list videos: %w", errors.New("dial tcp 10.0.0.4:5432: connection refused")))
	assert.Equal(t, apiErr.Status, http.StatusInternalServerError)
	assert.Equal(t, apiErr.Code, util.CodeInternal)
	assert.Equal(t, apiErr.Message, "")
	assert.Assert(t, apiErr.InternalMessage != "")
}

func TestHTTPErrorHandler(t *testing.T) {
	ec := echo.New()
	ec.HTTPErrorHandler = util.GetHTTPErrorHandler(ec.DefaultHTTPErrorHandler)

	t.Run("APIError", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx := ec.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ec.HTTPErrorHandler(util.APIError{Status: http.StatusForbidden, Code: util.CodeForbidden, InternalMessage: "secret"}, ctx)

		assert.Equal(t, rec.Code, http.StatusForbidden)
		var body map[string]any
		assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, body["code"], util.CodeForbidden)
		assert.Equal(t, body["message"], http.StatusText(http.StatusForbidden))
		_, leaked := body["InternalMessage"]
		assert.Assert(t, !leaked)
	})

	t.Run("Fallback", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx := ec.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		ec.HTTPErrorHandler(echo.NewHTTPError(http.StatusTeapot, "short and stout"), ctx)

		assert.Equal(t, rec.Code, http.StatusTeapot)
	})
}
