package services

import "errors"

const (
	MinPasswordLength = 6
	MaxPasswordLength = 200
)

var ErrWeakPassword = errors.New("weak password")

func ValidatePasswordStrength(password string) error {
	length := len([]rune(password))
	if length < MinPasswordLength || length > MaxPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
