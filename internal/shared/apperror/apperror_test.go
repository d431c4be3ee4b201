package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("BOOK001", "Book not found", cause), http.StatusNotFound},
		{"validation", Validationf("rating must be between %d and %d", 1, 5), http.StatusBadRequest},
		{"transactional", Transactional("rolled back", cause), http.StatusInternalServerError},
		{"unexpected", Unexpected(cause), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("get: %w", NotFound("REV001", "Review not found", nil)), http.StatusNotFound},
		{"foreign error", cause, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublic_HidesForeignErrors(t *testing.T) {
	code, msg := Public(errors.New("pq: password authentication failed"))
	assert.Equal(t, CodeInternal, code)
	assert.Equal(t, "Internal server error", msg)

	code, msg = Public(NotFound("BOOK001", "Book not found", nil))
	assert.Equal(t, "BOOK001", code)
	assert.Equal(t, "Book not found", msg)
}

func TestError_UnwrapKeepsSentinel(t *testing.T) {
	sentinel := errors.New("book not found")
	err := fmt.Errorf("lock book: %w", NotFound("BOOK001", "Book not found", sentinel))

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.NotEqual(t, KindValidation, KindOf(err))
	assert.Equal(t, "not_found", KindOf(err).String())
}
