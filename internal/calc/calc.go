// Package calc holds what the calculator packages share: the input error
// sentinel and the JSON response helpers used by their handlers.
package calc

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"Estimator/internal/units"
)

// ErrInvalidInput marks a request field that a calculator cannot work with.
var ErrInvalidInput = errors.New("invalid input")

// Invalid wraps ErrInvalidInput with the offending field.
func Invalid(field, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidInput, "%s: "+format, append([]any{field}, args...)...)
}

// Positive rejects zero, negative and NaN values of a required field.
func Positive(field string, v float64) error {
	if !(v > 0) {
		return Invalid(field, "must be positive, got %v", v)
	}
	return nil
}

// Fraction rejects percentages outside (0, 100].
func Fraction(field string, pct float64) error {
	if !(pct > 0 && pct <= 100) {
		return Invalid(field, "must be within (0, 100] %%, got %v", pct)
	}
	return nil
}

// HTTPStatus maps calculator errors to a response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, units.ErrDimensionMismatch),
		errors.Is(err, units.ErrNotCountable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// DecodeInput decodes raw into a copy of def; empty input yields def.
func DecodeInput[T any](raw json.RawMessage, def T) (T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return def, nil
	}
	in := def
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, errors.Wrap(ErrInvalidInput, err.Error())
	}
	return in, nil
}
