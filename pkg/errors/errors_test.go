package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewNotFound("Appointment", nil), http.StatusNotFound},
		{NewValidation("Email inválido", nil), http.StatusBadRequest},
		{NewConflict("slot taken", nil), http.StatusConflict},
		{NewInternal(stderrors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode())
	}
}

func TestWrapping(t *testing.T) {
	cause := stderrors.New("record missing")
	err := NewNotFound("Appointment", cause)

	assert.Equal(t, "Appointment not found", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "record missing")

	bare := NewConflict("slot taken", nil)
	assert.Equal(t, "slot taken", bare.Error())
}
