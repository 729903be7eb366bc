package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError represents a validation error on a single request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var fieldMessages = map[string]string{
	"required": "Field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short",
	"max":      "Value is too long",
}

// RespondBindError renders request binding failures. Struct-tag
// validation errors become per-field messages; anything else (malformed
// JSON, wrong types) is a plain bad request.
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, e := range verrs {
			msg := fieldMessages[e.Tag()]
			if msg == "" {
				msg = e.Error()
			}
			fields = append(fields, FieldError{Field: e.Field(), Message: msg})
		}
		c.JSON(http.StatusBadRequest, &Response{
			Status:  statusError,
			Message: "validation failed",
			Data:    fields,
		})
		return
	}
	c.JSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
}
