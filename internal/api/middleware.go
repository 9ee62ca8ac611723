package api

import (
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName     = "dailymood_auth"
	languageCookieName = "dailymood_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
