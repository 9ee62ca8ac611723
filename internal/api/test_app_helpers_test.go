package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/db"
	"github.com/Yarik-eng/DailyMood/internal/i18n"
	"github.com/Yarik-eng/DailyMood/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-for-dailymood-api-suite"

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	handler  *Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithConfig(t, func(*Config) {})
}

func newTestAppWithConfig(t *testing.T, configure func(*Config)) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "dailymood-api-test.db")
	database, err := db.OpenSQLite(databasePath, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	config := Config{
		SecretKey:        testSecretKey,
		Location:         time.UTC,
		DisableRateLimit: true,
	}
	configure(&config)

	handler, err := NewHandler(database, i18nManager, config)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, database: database, handler: handler}
}

func (env *testApp) freezeTime(now time.Time) {
	env.handler.now = func() time.Time { return now }
}

func (env *testApp) do(t *testing.T, method string, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		serialized, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(serialized)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (env *testApp) createUser(t *testing.T, email string, password string, isAdmin bool, isPremium bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		IsPremium:    isPremium,
		CreatedAt:    time.Now().UTC(),
	}
	if err := env.database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// login returns a Cookie header value for the session.
func (env *testApp) login(t *testing.T, email string, password string) string {
	t.Helper()

	response := env.do(t, http.MethodPost, "/auth/login", fiber.Map{"email": email, "password": password}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, response.StatusCode)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("login %s: expected auth cookie", email)
	}
	return authCookieName + "=" + cookie.Value
}

func (env *testApp) createProduct(t *testing.T, slug string, productType string, price string, active bool) models.Product {
	t.Helper()

	product := models.Product{
		Name:     strings.ReplaceAll(slug, "-", " "),
		Slug:     slug,
		Type:     productType,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	if err := env.database.Create(&product).Error; err != nil {
		t.Fatalf("create product %s: %v", slug, err)
	}
	if !active {
		if err := env.database.Model(&product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product %s: %v", slug, err)
		}
	}
	return product
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(raw), err)
	}
}

type apiErrorBody struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Errors  map[string]string `json:"errors"`
}

func readAPIError(t *testing.T, response *http.Response) apiErrorBody {
	t.Helper()

	payload := apiErrorBody{}
	decodeBody(t, response, &payload)
	if payload.Status != statusError {
		t.Fatalf("expected error envelope, got status %q", payload.Status)
	}
	return payload
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, string(raw))
	}
}
