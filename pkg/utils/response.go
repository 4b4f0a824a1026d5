package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "mechanic-system/pkg/errors"
)

// ErrorResponse translates any error raised below the routing layer into the
// API's JSON error body and logs the internal details. Validation failures
// become a field-keyed message map; everything else a single "error" string.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("http error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, map[string]interface{}{"error": httpErr.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return c.JSON(http.StatusBadRequest, ValidationErrorMap(validationErrors))
	}

	for sentinel, code := range apperrors.ErrorList {
		if errors.Is(err, sentinel) {
			return c.JSON(code, map[string]interface{}{"error": sentinel.Error()})
		}
	}

	logger.Error("unexpected error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": "Internal server error",
	})
}

// ValidationErrorMap renders validator failures as a JSON-field-keyed list
// of messages.
func ValidationErrorMap(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		var msg string
		switch e.Tag() {
		case "required":
			msg = "Missing data for required field."
		case "email":
			msg = "Not a valid email address."
		case "gte", "min":
			msg = "Value below the allowed minimum."
		default:
			msg = "Invalid value."
		}
		out[e.Field()] = append(out[e.Field()], msg)
	}
	return out
}
