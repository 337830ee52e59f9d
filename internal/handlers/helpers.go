package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lumina-app/backend/internal/apierror"
)

// currentUserID returns the authenticated user's ID from the gin context.
// The auth middleware sets it; a missing value means the route was wired
// without auth and the request is rejected.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return "", false
	}
	return userID.(string), true
}

// bindingErrors converts a gin binding error into field-level problem
// details. Non-validator errors (malformed JSON) collapse into one entry.
func bindingErrors(err error) []apierror.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apierror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apierror.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed %s validation", fe.Tag()),
				Code:    fe.Tag(),
			})
		}
		return fields
	}
	return []apierror.FieldError{{Field: "body", Message: err.Error(), Code: "invalid_body"}}
}
