package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized},
		{"upstream", Upstream("stripe down", errors.New("boom")), http.StatusBadGateway},
		{"mail", Mail("relay refused", errors.New("boom")), http.StatusBadGateway},
		{"database", Database("db down", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("x")))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", NotFound("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream("stripe session retrieval failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection reset", err.Details())
	assert.Contains(t, err.Error(), "stripe session retrieval failed")
}
