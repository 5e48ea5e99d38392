package server

import (
	"net/http"
	"testing"

	"github.com/lancerkit/lancer/internal/ai"
	leaddomain "github.com/lancerkit/lancer/internal/lead/domain"
	projectdomain "github.com/lancerkit/lancer/internal/project/domain"
	quotedomain "github.com/lancerkit/lancer/internal/quote/domain"
	"github.com/lancerkit/lancer/internal/quote/draft"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorDraftValidationKeepsMessage(t *testing.T) {
	err := &draft.ValidationError{Field: "project", Message: "Project is required"}

	status, payload := mapError(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	assert.Equal(t, "Project is required", payload.Message)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "project", payload.Errors[0].Field)
		assert.Equal(t, "Project is required", payload.Errors[0].Message)
	}
}

func TestMapErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"invalid user", quotedomain.ErrInvalidUser, http.StatusUnauthorized, "unauthorized"},
		{"not found", leaddomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"name collision", projectdomain.ErrNameAlreadyExists, http.StatusConflict, "conflict"},
		{"already converted", leaddomain.ErrAlreadyConverted, http.StatusConflict, "conflict"},
		{"project mismatch", quotedomain.ErrProjectMismatch, http.StatusBadRequest, "validation_error"},
		{"ai rate limited", ai.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
		{"ai unavailable", ai.ErrUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
		{"ai failed", ai.ErrGenerationFailed, http.StatusBadGateway, "ai_generation_failed"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.typ, payload.Type)
		})
	}
}

func TestMapErrorRateLimitGuidanceDiffersFromUnavailable(t *testing.T) {
	_, limited := mapError(ai.ErrRateLimited)
	_, down := mapError(ai.ErrUnavailable)

	assert.NotEqual(t, limited.Message, down.Message)
}
