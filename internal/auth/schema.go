// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"regexp"

	"github.com/taibuivan/nicocal/internal/platform/validate"
)

// Login field identifiers.
const (
	FieldUserID   = "userId"
	FieldPassword = "password"
)

var (
	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	digitRegex  = regexp.MustCompile(`\d`)
)

// LoginInput is the login request body.
type LoginInput struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// validateLogin applies the login schema. strict adds a maximum userId length
// and requires the password to mix letters and digits.
func validateLogin(input LoginInput, strict bool) error {
	validator := &validate.Validator{}
	validator.MinLen(FieldUserID, input.UserID, 3)
	if strict {
		validator.MaxLen(FieldUserID, input.UserID, 20)
	}

	validator.MinLen(FieldPassword, input.Password, 8)
	if strict {
		validator.
			Matches(FieldPassword, input.Password, letterRegex, "Must contain at least one letter").
			Matches(FieldPassword, input.Password, digitRegex, "Must contain at least one digit")
	}

	return validator.Err()
}
