package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

// SetLanguage stores the preferred language for clients that do not send
// Accept-Language.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().AddDate(1, 0, 0),
	})
	return c.JSON(fiber.Map{"status": statusSuccess, "language": language})
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	if messages, ok := c.Locals(contextMessagesKey).(map[string]string); ok {
		if value, found := messages[key]; found && value != "" {
			return value
		}
	}
	return handler.i18n.Translate(currentLanguage(c), key)
}
