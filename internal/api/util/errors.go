package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hbomb79/Tubely/internal/ingest"
	"github.com/hbomb79/Tubely/pkg/logger"
	"github.com/labstack/echo/v4"
)

type APIError struct {
	// Human readable error display message
	Message string `json:"message"`

	// A machine readable and stable identifier for the error case being represented
	Code string `json:"code"`

	// Used to alter the HTTP response status in accordance with the error
	Status int `json:"-"`

	// Additional message for internal logging only. Will not be included in the message
	// sent to the user.
	InternalMessage string `json:"-"`
}

// Error satisifies the Go error interface and simply exposes the
// message contained by this APIError.
func (err APIError) Error() string {
	return fmt.Sprintf("api error: %s", err.Message)
}

const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeProcessingFailed   = "PROCESSING_FAILED"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

var ErrAPIUnauthorized APIError = APIError{Status: http.StatusUnauthorized, Code: CodeUnauthorized}

// NewInvalidInputError returns a 400 APIError with the message provided.
func NewInvalidInputError(format string, args ...any) APIError {
	return APIError{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// ToAPIError converts any error raised while handling a request in to an APIError,
// based on the ingest kind it wraps. Errors which wrap no kind (e.g. a failing
// metadata store) become a 500 INTERNAL_ERROR. Client errors expose the error
// message, whereas server errors only expose a generic message with the real
// error retained for internal logging.
func ToAPIError(err error) APIError {
	switch {
	case errors.Is(err, ingest.ErrInvalidInput):
		return APIError{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: err.Error()}
	case errors.Is(err, ingest.ErrForbidden):
		return APIError{Status: http.StatusForbidden, Code: CodeForbidden, Message: "Video does not belong to the requesting user"}
	case errors.Is(err, ingest.ErrNotFound):
		return APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: "Video does not exist"}
	case errors.Is(err, ingest.ErrProcessingFailed):
		return APIError{Status: http.StatusInternalServerError, Code: CodeProcessingFailed, Message: "Failed to process upload", InternalMessage: err.Error()}
	case errors.Is(err, ingest.ErrStorageUnavailable):
		return APIError{Status: http.StatusServiceUnavailable, Code: CodeStorageUnavailable, Message: "Storage is currently unavailable", InternalMessage: err.Error()}
	}

	return APIError{Status: http.StatusInternalServerError, Code: CodeInternal, InternalMessage: err.Error()}
}

// GetHTTPErrorHandler returns an echo HTTP error handler
// which understands how to interpret APIError. If an error is
// provided which is not recognized, it will be passed off to the
// fallback HTTP handler provided.
func GetHTTPErrorHandler(fallbackHandler echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	logger := logger.Get("API")
	return func(err error, ctx echo.Context) {
		var apiErr APIError
		if ok := errors.As(err, &apiErr); ok {
			if apiErr.Status == 0 {
				apiErr.Status = 500
			}
			if len(apiErr.Message) == 0 {
				apiErr.Message = http.StatusText(apiErr.Status)
			}
			if len(apiErr.Code) == 0 {
				apiErr.Code = http.StatusText(apiErr.Status)
			}
			if len(apiErr.InternalMessage) > 0 {
				logger.Errorf("Request failure, internal error: %s\n", apiErr.InternalMessage)
			}

			if err := ctx.JSON(apiErr.Status, apiErr); err == nil {
				return
			}
		}

		// This is not an APIError, just let Echo handle it as it normally would
		logger.Warnf(
			"%s request to %s caused error response, however the response does not satisfy the APIError interface. Falling back to default HTTP error handling\n",
			ctx.Request().Method, ctx.Request().RequestURI,
		)
		fallbackHandler(err, ctx)
	}
}
