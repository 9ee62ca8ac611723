package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errPasswordMismatch = errors.New("passwords do not match")

// PasswordPrompt asks for a secret with the given label.
type PasswordPrompt func(label string) (string, error)

// TerminalPasswordPrompt reads from stdin with echo disabled and writes
// labels to out. Piped input is read as plain lines.
func TerminalPasswordPrompt(stdin *os.File, out io.Writer) PasswordPrompt {
	return func(label string) (string, error) {
		fmt.Fprint(out, label)
		secret, err := readPasswordNoEcho(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(secret), nil
	}
}

// confirmedPassword prompts twice and requires both answers to match.
func confirmedPassword(prompt PasswordPrompt) (string, error) {
	if prompt == nil {
		return "", errors.New("password prompt is not configured")
	}
	first, err := prompt("Password: ")
	if err != nil {
		return "", err
	}
	second, err := prompt("Repeat password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return strings.TrimRight(first, "\r\n"), nil
}
