package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/Yarik-eng/DailyMood/internal/services"
	"github.com/gofiber/fiber/v2"
)

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.invalidInput(c)
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(input.Email, input.Password, handler.currentTime())
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	if err := handler.startSession(c, user, input.RememberMe); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": statusSuccess, "user": user})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.invalidInput(c)
	}

	key := loginKeyFor(c.IP(), input.Email)
	now := handler.now()
	if wait := handler.loginThrottle.lockedFor(key, now); wait > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return handler.apiErrorCode(c, fiber.StatusTooManyRequests, codeRateLimited, "error.too_many_requests")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginThrottle.recordFailure(key, now)
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginThrottle.clear(key)

	if err := handler.startSession(c, user, input.RememberMe); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": statusSuccess, "user": user})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return c.JSON(fiber.Map{"status": statusSuccess})
}

func (handler *Handler) Profile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.unauthorized(c)
	}
	return c.JSON(fiber.Map{"status": statusSuccess, "user": user})
}
