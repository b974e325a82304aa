package api

import (
	"net/mail"
	"strings"
)

type validationErrors []string

func (v *validationErrors) add(message string) {
	*v = append(*v, message)
}

func (v validationErrors) hasErrors() bool {
	return len(v) > 0
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Name == ""
}

func validateRegister(fullname, email, username, password string) validationErrors {
	var errs validationErrors

	if isBlank(fullname) {
		errs.add("fullname is required")
	}

	if isBlank(email) {
		errs.add("email is required")
	} else if !validEmail(email) {
		errs.add("email is invalid")
	}

	if isBlank(username) {
		errs.add("username is required")
	} else if strings.ContainsAny(strings.TrimSpace(username), " /\t") {
		errs.add("username must not contain spaces or slashes")
	}

	if isBlank(password) {
		errs.add("password is required")
	}

	return errs
}
