package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/swagger/index.html", func(c *fiber.Ctx) error { return c.SendString("docs") })
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		key    string
		status int
	}{
		{name: "ValidKey", cfg: Config{ApiKey: "secret"}, path: "/ping", key: "secret", status: 200},
		{name: "WrongKey", cfg: Config{ApiKey: "secret"}, path: "/ping", key: "nope", status: 401},
		{name: "MissingKey", cfg: Config{ApiKey: "secret"}, path: "/ping", status: 401},
		{name: "Disabled", cfg: Config{}, path: "/ping", status: 200},
		{
			name: "Skipped",
			cfg: Config{ApiKey: "secret", Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			}},
			path:   "/swagger/index.html",
			status: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderName, tt.key)
			}

			resp, err := setupApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
