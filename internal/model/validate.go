package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/itsivali/careconnect-v1/pkg/errors"
)

var (
	// Word classes are spelled out because Go's \w is ASCII-only;
	// addresses like josé@example.com must validate.
	emailPattern   = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)
	contactPattern = regexp.MustCompile(`^(0|\+254|254)[0-9]{9}$`)
)

// timeNow is swapped out in tests that need a pinned reference instant
// for future-date validation.
var timeNow = time.Now

func validateName(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.NewValidation(field, "cannot be empty")
	}
	return trimmed, nil
}

func validateEmail(field, value string) (string, error) {
	if value != "" && !emailPattern.MatchString(value) {
		return "", errors.NewValidation(field, "invalid email format")
	}
	return value, nil
}

func validateContactNumber(field, value string) (string, error) {
	if value != "" && !contactPattern.MatchString(value) {
		return "", errors.NewValidation(field, "invalid contact number format")
	}
	return value, nil
}

func validateFutureDate(field string, value time.Time) (time.Time, error) {
	if !value.After(timeNow()) {
		return time.Time{}, errors.NewValidation(field, "must be in the future")
	}
	return value, nil
}

func validateOneOf(field, value string, allowed []string) (string, error) {
	for _, v := range allowed {
		if value == v {
			return value, nil
		}
	}
	return "", errors.NewValidation(field,
		fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
}

func validatePositivePrice(field string, value float64) (float64, error) {
	if value <= 0 {
		return 0, errors.NewValidation(field, "must be greater than 0")
	}
	return value, nil
}

func validatePositiveQuantity(field string, value int) (int, error) {
	if value <= 0 {
		return 0, errors.NewValidation(field, "must be greater than 0")
	}
	return value, nil
}
