package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "coded error", err: New(NotFound, "kit not found"), want: NotFound},
		{name: "wrapped coded error", err: fmt.Errorf("loading kit: %w", New(Conflict, "quota")), want: Conflict},
		{name: "plain error", err: errors.New("disk on fire"), want: Internal},
		{name: "nil", err: nil, want: Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{code: Unauthenticated, want: http.StatusUnauthorized},
		{code: ForbiddenCSRF, want: http.StatusForbidden},
		{code: Conflict, want: http.StatusConflict},
		{code: NotFound, want: http.StatusNotFound},
		{code: Internal, want: http.StatusInternalServerError},
		{code: Code("UNKNOWN"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
