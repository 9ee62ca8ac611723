package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "dailymood"

var errNoSession = errors.New("no session")

// sessionClaims is the payload of the dailymood_auth cookie. IsAdmin is
// informational; admin routes re-read the stored user.
type sessionClaims struct {
	UserID   uint `json:"uid"`
	IsAdmin  bool `json:"adm"`
	Remember bool `json:"rem,omitempty"`
	jwt.RegisteredClaims
}

// sessionCodec signs and verifies session tokens and builds the cookies
// that carry them.
type sessionCodec struct {
	secret []byte
	secure bool
}

func sessionTTL(remember bool) time.Duration {
	if remember {
		return rememberAuthTokenTTL
	}
	return defaultAuthTokenTTL
}

func (codec sessionCodec) issue(user models.User, remember bool, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(sessionTTL(remember))
	claims := sessionClaims{
		UserID:   user.ID,
		IsAdmin:  user.IsAdmin,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (codec sessionCodec) parse(raw string, now time.Time) (sessionClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return sessionClaims{}, errNoSession
	}

	claims := sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return codec.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return sessionClaims{}, err
	}
	if claims.UserID == 0 || claims.Subject != strconv.FormatUint(uint64(claims.UserID), 10) {
		return sessionClaims{}, errors.New("session subject mismatch")
	}
	return claims, nil
}

// cookie keeps short sessions as browser-session cookies; only remember-me
// sessions get an Expires attribute.
func (codec sessionCodec) cookie(token string, expiresAt time.Time, remember bool) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   codec.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if remember {
		cookie.Expires = expiresAt
	}
	return cookie
}

func (codec sessionCodec) expiredCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     authCookieName,
		Path:     "/",
		HTTPOnly: true,
		Secure:   codec.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	}
}

func (handler *Handler) startSession(c *fiber.Ctx, user models.User, remember bool) error {
	token, expiresAt, err := handler.sessions.issue(user, remember, handler.now())
	if err != nil {
		return err
	}
	c.Cookie(handler.sessions.cookie(token, expiresAt, remember))
	return nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	c.Cookie(handler.sessions.expiredCookie())
}

// sessionUser resolves the cookie to the stored user. A valid token for a
// deleted account is no session.
func (handler *Handler) sessionUser(c *fiber.Ctx) (*models.User, error) {
	claims, err := handler.sessions.parse(c.Cookies(authCookieName), handler.now())
	if err != nil {
		return nil, err
	}

	handler.ensureDependencies()
	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
