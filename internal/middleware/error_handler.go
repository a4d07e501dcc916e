package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"myRoomStore/pkg/logger"
	jsonres "myRoomStore/pkg/response"
)

// ErrorHandler is the echo HTTPErrorHandler. Domain errors are mapped in the
// handlers; anything that escapes here is either an echo routing error or an
// unexpected failure, and clients get no internal detail either way.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled error", err, "path", c.Path())
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
