package response

import (
	"errors"
	"net/http"

	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return WriteSuccessResponseWithStatus(c, http.StatusOK, message, data)
}

func WriteSuccessResponseWithStatus(c echo.Context, statusCode int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Success = true
	resp.Data = data
	resp.Message = message

	return c.JSON(statusCode, resp)
}

func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Success = false
	resp.Message = err.Error()
	resp.Errors = errors

	return c.JSON(statusCode, resp)
}

// WriteBindErrorResponse reports a payload that failed to bind or validate.
func WriteBindErrorResponse(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]ValidationError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, ValidationError{Field: fe.Field(), Tag: fe.Tag()})
		}
		return WriteErrorResponse(c, errs.ErrClient, fields)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: errs.ErrClient.Error(), Errors: httpErr.Message})
	}

	return WriteErrorResponse(c, errs.ErrClient, err.Error())
}

// HTTPErrorHandler formats errors that never reached a controller, such as
// unknown routes or rejected tokens.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := errs.GetErrorStatusCode(err)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		if httpErr == echo.ErrNotFound {
			message = "Route Not Found: " + c.Request().URL.Path
		}
	}

	if statusCode >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "HTTPErrorHandler").Msg("")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(statusCode)
	} else {
		writeErr = c.JSON(statusCode, ErrorResponse{Message: message})
	}
	if writeErr != nil {
		log.Ctx(c.Request().Context()).Error().Err(writeErr).Str("component", "HTTPErrorHandler").Msg("")
	}
}
