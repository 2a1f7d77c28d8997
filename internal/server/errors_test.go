package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"forbidden", &ErrForbidden{Role: "reviewer"}, http.StatusForbidden},
		{"not found", &ErrNotFound{Resource: "job", ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "title", Message: "required"}, http.StatusBadRequest},
		{"feature disabled", &ErrFeatureDisabled{Feature: "AI job profiles"}, http.StatusNotImplemented},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	id := uuid.New()
	assert.Contains(t, (&ErrNotFound{Resource: "candidate", ID: id}).Error(), id.String())
	assert.Contains(t, (&ErrForbidden{Role: "reviewer"}).Error(), "reviewer")
	assert.Contains(t, (&ErrFeatureDisabled{Feature: "AI job profiles"}).Error(), "not configured")
}
