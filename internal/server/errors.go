package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lancerkit/lancer/internal/ai"
	"github.com/lancerkit/lancer/internal/auth/session"
	clientdomain "github.com/lancerkit/lancer/internal/client/domain"
	leaddomain "github.com/lancerkit/lancer/internal/lead/domain"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	proposaldomain "github.com/lancerkit/lancer/internal/proposal/domain"
	quotedomain "github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/internal/quote/draft"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	// Draft validation failures carry editor-facing messages; pass them
	// through verbatim so the quote form can surface them.
	var draftErr *draft.ValidationError
	if errors.As(err, &draftErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: draftErr.Message,
			Errors: []ValidationError{
				{
					Field:   draftErr.Field,
					Code:    "invalid_" + draftErr.Field,
					Message: draftErr.Message,
				},
			},
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many AI requests, slow down and retry shortly",
		}
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable, try again later",
		}
	case errors.Is(err, ai.ErrGenerationFailed):
		return http.StatusBadGateway, errorPayload{
			Type:    "ai_generation_failed",
			Message: "AI generation failed",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isClientValidationError(err),
		isLeadValidationError(err),
		isProjectValidationError(err),
		isQuoteValidationError(err),
		isProposalValidationError(err):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, session.ErrTokenInvalid),
		errors.Is(err, session.ErrTokenExpired),
		errors.Is(err, clientdomain.ErrInvalidUser),
		errors.Is(err, leaddomain.ErrInvalidUser),
		errors.Is(err, projectdomain.ErrInvalidUser),
		errors.Is(err, quotedomain.ErrInvalidUser),
		errors.Is(err, proposaldomain.ErrInvalidUser):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, projectdomain.ErrNameAlreadyExists),
		errors.Is(err, leaddomain.ErrAlreadyConverted),
		errors.Is(err, proposaldomain.ErrAlreadySent):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, projectdomain.ErrNameAlreadyExists):
		return "a project with this name already exists"
	case errors.Is(err, leaddomain.ErrAlreadyConverted):
		return "lead was already converted"
	case errors.Is(err, proposaldomain.ErrAlreadySent):
		return "proposal was already sent"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, leaddomain.ErrNotFound),
		errors.Is(err, projectdomain.ErrNotFound),
		errors.Is(err, quotedomain.ErrNotFound),
		errors.Is(err, proposaldomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isClientValidationError(err error) bool {
	switch {
	case errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, clientdomain.ErrInvalidEmail),
		errors.Is(err, clientdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isLeadValidationError(err error) bool {
	switch {
	case errors.Is(err, leaddomain.ErrInvalidName),
		errors.Is(err, leaddomain.ErrInvalidEmail),
		errors.Is(err, leaddomain.ErrInvalidID),
		errors.Is(err, leaddomain.ErrInvalidStatus):
		return true
	default:
		return false
	}
}

func isProjectValidationError(err error) bool {
	switch {
	case errors.Is(err, projectdomain.ErrInvalidName),
		errors.Is(err, projectdomain.ErrInvalidClient),
		errors.Is(err, projectdomain.ErrInvalidID),
		errors.Is(err, projectdomain.ErrInvalidStatus),
		errors.Is(err, projectdomain.ErrInvalidTitle),
		errors.Is(err, projectdomain.ErrInvalidBody):
		return true
	default:
		return false
	}
}

func isQuoteValidationError(err error) bool {
	switch {
	case errors.Is(err, quotedomain.ErrInvalidID),
		errors.Is(err, quotedomain.ErrInvalidStatus),
		errors.Is(err, quotedomain.ErrInvalidClient),
		errors.Is(err, quotedomain.ErrInvalidProject),
		errors.Is(err, quotedomain.ErrProjectMismatch),
		errors.Is(err, quotedomain.ErrInvalidCurrency):
		return true
	default:
		return false
	}
}

func isProposalValidationError(err error) bool {
	switch {
	case errors.Is(err, proposaldomain.ErrInvalidID),
		errors.Is(err, proposaldomain.ErrInvalidTitle):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "project_not_for_client" {
		return "project"
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "project_not_for_client":
		return "project does not belong to the selected client"
	default:
		return "invalid value"
	}
}
