package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCategoryNotFound is returned when a category does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrExpenseNotFound is returned when an expense does not exist or is not
	// owned by the caller.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrDuplicateCategory is returned when a category name collides within
	// one owner's scope.
	ErrDuplicateCategory = errors.New("category name already exists")
	// ErrInvalidAmount is returned when an amount is malformed or negative.
	ErrInvalidAmount = errors.New("amount must be a non-negative decimal")
	// ErrInvalidDate is returned when a date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
	// ErrInvalidReportPeriod is returned when month or year is out of range.
	ErrInvalidReportPeriod = errors.New("month must be 1-12 and year a 4-digit number")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// an upstream failure: the caller gets a generic 500 and the detail stays in
// the server log.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	case errors.Is(err, ErrDuplicateCategory):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_CATEGORY")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE")
	case errors.Is(err, ErrInvalidReportPeriod):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REPORT_PERIOD")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
