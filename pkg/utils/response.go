package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorBody is the error response shape: {message, error?}.
type ErrorBody struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error,omitempty"`
}

// ValidationErrorBody carries the structured field errors for a 400.
type ValidationErrorBody struct {
	Errors []string `json:"errors"`
}

// MessageResponse sends {message} with the given status.
func MessageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Message: message})
}

// ErrorResponse sends {message, error?}. The detail should be a sanitized
// description, never a raw store error.
func ErrorResponse(c *gin.Context, statusCode int, message string, detail string) {
	body := ErrorBody{Message: message}
	if detail != "" {
		body.Error = detail
	}
	c.JSON(statusCode, body)
}

// ValidationErrorResponse sends {errors: [...]} for failed DTO validation.
func ValidationErrorResponse(c *gin.Context, err error) {
	var errs []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errs = append(errs, getValidationErrorMessage(fieldError))
		}
	} else {
		errs = append(errs, err.Error())
	}

	c.JSON(http.StatusBadRequest, ValidationErrorBody{Errors: errs})
}

// getValidationErrorMessage returns a user-friendly validation error message
func getValidationErrorMessage(fieldError validator.FieldError) string {
	field := fieldError.Field()
	tag := fieldError.Tag()

	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fieldError.Param() + " characters long"
	case "max":
		return field + " must be at most " + fieldError.Param() + " characters long"
	case "oneof":
		return field + " must be one of: " + fieldError.Param()
	default:
		return field + " is invalid"
	}
}

// PaginatedBody is the envelope for paginated list reads.
type PaginatedBody struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	LastPage int         `json:"lastPage"`
}

// PaginatedResponse sends {data, total, page, lastPage}.
func PaginatedResponse(c *gin.Context, statusCode int, data interface{}, total int64, page, lastPage int) {
	c.JSON(statusCode, PaginatedBody{
		Data:     data,
		Total:    total,
		Page:     page,
		LastPage: lastPage,
	})
}
