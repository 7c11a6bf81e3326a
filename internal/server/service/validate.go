package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator"

	serr "github.com/Altair788/AdHub/internal/shared/errors"
)

// validate проверяет email тем же правилом, что и тела запросов в api.
var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func checkEmail(v *serr.ValidationError, email string) {
	switch {
	case email == "":
		v.Add("email", "required")
	case validate.Var(email, "email,max=254") != nil:
		v.Add("email", "invalid email")
	}
}

func checkPassword(v *serr.ValidationError, field, password string, minLen int) {
	switch {
	case strings.TrimSpace(password) == "":
		v.Add(field, "required")
	case utf8.RuneCountInString(password) < minLen:
		v.Add(field, "too short")
	}
}

// checkLength проверяет длину в символах, а не в байтах.
func checkLength(v *serr.ValidationError, field, s string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	switch {
	case n < min && min == 1:
		v.Add(field, "required")
	case n < min:
		v.Add(field, "too short")
	case n > max:
		v.Add(field, "too long")
	}
}
