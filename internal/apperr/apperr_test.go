package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindReferential, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindStorage, http.StatusInternalServerError},
		{KindUpstream, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromWrapped(t *testing.T) {
	inner := NotFound("Recipe not found")
	wrapped := fmt.Errorf("delete recipe: %w", inner)

	got := From(wrapped, "Failed to delete recipe")
	if got != inner {
		t.Fatalf("From did not unwrap to the original *Error: %#v", got)
	}
	if !Is(wrapped, KindNotFound) {
		t.Error("Is(wrapped, KindNotFound) = false")
	}
}

func TestFromPlainErrorIsStorage(t *testing.T) {
	cause := errors.New("connection reset")
	got := From(cause, "Failed to fetch recipes")

	if got.Kind != KindStorage {
		t.Errorf("Kind = %v, want storage", got.Kind)
	}
	if got.Message != "Failed to fetch recipes" {
		t.Errorf("Message = %q", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Error("storage error should unwrap to its cause")
	}
}

func TestWithDetail(t *testing.T) {
	err := Referential("Invalid category").WithDetail("availableCategories", []string{"主菜"})
	if _, ok := err.Detail["availableCategories"]; !ok {
		t.Error("detail not attached")
	}
	if err.Error() != "Invalid category" {
		t.Errorf("Error() = %q", err.Error())
	}
}
