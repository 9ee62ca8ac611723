package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/security"
	"github.com/Yarik-eng/DailyMood/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the user's password with a generated one
// and prints it once.
func RunResetPasswordCommand(database *gorm.DB, email string, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", user.Email)
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	return nil
}
