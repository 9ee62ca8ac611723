package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/Yarik-eng/DailyMood/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunCreateAdminCommand creates an admin account, or promotes the existing
// account with that email and sets the new password on it. An empty email
// means the primary admin address.
func RunCreateAdminCommand(database *gorm.DB, email string, prompt PasswordPrompt, out io.Writer) error {
	if email == "" {
		email = services.DefaultPrimaryAdminEmail
	}
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("invalid email address %q", email)
	}

	password, err := confirmedPassword(prompt)
	if err != nil {
		return err
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return fmt.Errorf("%w: use %d to %d characters", err, services.MinPasswordLength, services.MaxPasswordLength)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := db.NewUserRepository(database)
	existing, err := users.FindByNormalizedEmail(normalizedEmail)
	switch {
	case err == nil:
		if err := users.UpdateByID(existing.ID, map[string]any{
			"is_admin":      true,
			"password_hash": string(passwordHash),
		}); err != nil {
			return fmt.Errorf("promote user: %w", err)
		}
		fmt.Fprintf(out, "User %s updated as admin\n", existing.Email)
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("load user: %w", err)
	}

	user := models.User{
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(&user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	fmt.Fprintf(out, "Admin %s created\n", user.Email)
	return nil
}
