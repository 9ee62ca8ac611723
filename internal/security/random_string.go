package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// PasswordAlphabet omits characters that are easy to confuse when read aloud.
const PasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const MinTemporaryPasswordLength = 8

var (
	errNegativeLength    = errors.New("length must be non-negative")
	errEmptyAlphabet     = errors.New("alphabet must not be empty")
	errShortTempPassword = errors.New("temporary password is too short")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

func TemporaryPassword(length int) (string, error) {
	if length < MinTemporaryPasswordLength {
		return "", errShortTempPassword
	}
	return RandomString(length, PasswordAlphabet)
}
